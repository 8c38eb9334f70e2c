package chat

import (
	"fmt"

	"golang.org/x/text/language"
)

// supported holds the reply languages; the first entry is the fallback for
// anything the matcher cannot place.
var supported = []language.Tag{
	language.English,
	language.Italian,
}

var matcher = language.NewMatcher(supported)

type messages struct {
	itemAdded        func(name string) string
	parseFailed      string
	unexpectedFormat string
	processingError  string
}

var messagesByTag = map[language.Tag]messages{
	language.English: {
		itemAdded:        func(name string) string { return fmt.Sprintf("Item '%s' added to inventory.", name) },
		parseFailed:      "Unable to parse AI response. Please try again.",
		unexpectedFormat: "Unexpected AI response format",
		processingError:  "An error occurred while processing your request. Please try again.",
	},
	language.Italian: {
		itemAdded:        func(name string) string { return fmt.Sprintf("Articolo '%s' aggiunto all'inventario.", name) },
		parseFailed:      "Impossibile analizzare la risposta AI. Riprova.",
		unexpectedFormat: "Formato risposta AI inaspettato",
		processingError:  "Si è verificato un errore durante l'elaborazione della richiesta. Riprova.",
	},
}

// messagesFor resolves a client language tag ("en", "it", "it-CH", ...) to a
// message set, falling back to English for unknown or empty input.
func messagesFor(lang string) messages {
	tag, err := language.Parse(lang)
	if err != nil {
		return messagesByTag[language.English]
	}
	_, index, _ := matcher.Match(tag)
	return messagesByTag[supported[index]]
}
