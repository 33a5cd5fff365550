package extract

// schemaPrompt instructs the model to emit one JSON object with the intent
// fields. The few-shot examples pin the field names and the action set; the
// user question is appended already normalized (accents stripped,
// lower-cased) so athlete and event matching stays accent-insensitive.
const schemaPrompt = `Eres un asistente experto en atletismo. Tu tarea es extraer la intencion del usuario y los parametros relevantes de su consulta.
Solo responde con un objeto JSON.

Parametros a extraer (si se encuentran):
- "atleta": Nombre del atleta.
- "prueba": Nombre de la prueba.
- "viento": Viento de la prueba.
- "puesto_competicion": Puesto del atleta en la competicion.
- "ano": Año especifico.
- "rango_anos": Un numero que representa los ultimos X años.
- "equipo": Nombre del equipo.
- "ordenar_por": El campo por el cual ordenar ("fecha", "marca", etc.).
- "marca_limite": Una marca de tiempo en segundos para hacer comparaciones.
- "accion": La accion que el usuario quiere realizar. (ej. "buscar", "comparar", "mejor_marca", "contar_atletas_por_prueba_y_ano", "contar_atletas_por_marca")

Ejemplo de salida para "cuantos atletas han corrido el 100m en 2024?":
{"prueba": "100m", "ano": 2024, "accion": "contar_atletas_por_prueba_y_ano"}

Ejemplo de salida para "cuantos atletas han corrido por debajo de 11.50 segundos en 100 metros lisos en 2024?":
{"prueba": "100 metros lisos", "marca_limite": 11.50, "ano": 2024, "accion": "contar_atletas_por_marca"}

Ejemplo de salida para "dime la mejor marca de Kevin Viñuela en los 200 metros lisos":
{"atleta": "Kevin Viñuela", "prueba": "200 metros lisos", "accion": "mejor_marca"}

Ejemplo de salida para "resultados de Jose Perez en el 100 metros de los ultimos 5 años ordenados por fecha":
{"atleta": "Jose Perez", "prueba": "100 metros lisos", "rango_anos": 5, "ordenar_por": "fecha"}

Consulta del usuario: "%s"
`
