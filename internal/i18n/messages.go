package i18n

// Message identifies a piece of UI chrome text.
type Message string

const (
	MsgBrand       Message = "brand"
	MsgNotFound    Message = "not_found"
	MsgPrevious    Message = "previous"
	MsgNext        Message = "next"
	MsgToggle      Message = "toggle"
	MsgSearch      Message = "search"
	MsgNoResults   Message = "no_results"
	MsgPlay        Message = "play"
	MsgPause       Message = "pause"
	MsgContents    Message = "contents"
	MsgLanguage    Message = "language"
	MsgPageTitle   Message = "page_title"
	MsgDemoOffline Message = "demo_offline"
)

var messages = map[Language]map[Message]string{
	Spanish: {
		MsgBrand:       "Docs 3DGS",
		MsgNotFound:    "Sección no encontrada. Selecciona un tema en el menú.",
		MsgPrevious:    "Anterior",
		MsgNext:        "Siguiente",
		MsgToggle:      "English",
		MsgSearch:      "Buscar",
		MsgNoResults:   "Sin resultados.",
		MsgPlay:        "Reproducir",
		MsgPause:       "Pausar",
		MsgContents:    "Contenido",
		MsgLanguage:    "Idioma",
		MsgPageTitle:   "Documentación de 3D Gaussian Splatting",
		MsgDemoOffline: "Demo interactiva sin conexión. Mostrando una vista estática.",
	},
	English: {
		MsgBrand:       "Docs 3DGS",
		MsgNotFound:    "Section not found. Please select a topic from the menu.",
		MsgPrevious:    "Previous",
		MsgNext:        "Next",
		MsgToggle:      "Español",
		MsgSearch:      "Search",
		MsgNoResults:   "No results.",
		MsgPlay:        "Play",
		MsgPause:       "Pause",
		MsgContents:    "Contents",
		MsgLanguage:    "Language",
		MsgPageTitle:   "3D Gaussian Splatting Documentation",
		MsgDemoOffline: "Interactive demo offline. Showing a static view.",
	},
}

// T returns the text for msg in lang. Missing entries fall back to the
// default language and finally to the message id itself.
func T(lang Language, msg Message) string {
	if s, ok := messages[lang][msg]; ok {
		return s
	}
	if s, ok := messages[Default][msg]; ok {
		return s
	}
	return string(msg)
}

// Pick chooses between a Spanish and an English literal.
func Pick(lang Language, es, en string) string {
	if lang == English {
		return en
	}
	return es
}
