// Package atletismo provides an embedded Go client for the athletics
// ranking question service. It loads the semicolon-delimited ranking CSV
// in-process and answers natural-language questions through an
// OpenAI-compatible chat-completions endpoint.
//
//	client, _ := atletismo.New(ctx,
//	    atletismo.WithDataset("ranking_consolidado.csv"),
//	    atletismo.WithModel(os.Getenv("GEMINI_API_KEY"), "", ""),
//	)
//	defer client.Close()
//
//	answer, _ := client.Ask(ctx, "¿Quién ganó los 100 metros en 2024?")
//	fmt.Println(answer.Text)
package atletismo
