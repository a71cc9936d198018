package extract

import (
	"strings"

	"github.com/ppiankov/diatax/internal/textutil"
)

// spanishStopWords is the common Spanish function-word list used to thin
// utterances before lexical analysis.
var spanishStopWords = toSet(`
de la que el en y a los del se las por un para con no una su al lo como
más pero sus le ya o este sí porque esta entre cuando muy sin sobre también
me hasta hay donde quien desde todo nos durante todos uno les ni contra
otros ese eso ante ellos e esto mí antes algunos qué unos yo otro otras otra
él tanto esa estos mucho quienes nada muchos cual poco ella estar estas
algunas algo nosotros mi mis tú te ti tu tus ellas nosotras vosotros
vosotras os mío mía míos mías tuyo tuya tuyos tuyas suyo suya suyos suyas
nuestro nuestra nuestros nuestras vuestro vuestra vuestros vuestras esos
esas estoy estás está estamos estáis están esté estés estemos estéis estén
estaré estarás estará estaremos estaréis estarán estaba estabas estábamos
estabais estaban estuve estuviste estuvo estuvimos estuvisteis estuvieron
he has ha hemos habéis han haya hayas hayamos hayáis hayan había habías
habíamos habíais habían soy eres es somos sois son sea seas seamos seáis
sean era eras éramos erais eran fui fuiste fue fuimos fuisteis fueron
tengo tienes tiene tenemos tenéis tienen tenía tenías teníamos teníais
tenían tuve tuviste tuvo tuvimos tuvisteis tuvieron
`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// IsStopWord reports whether word (already lowercased) is a Spanish stop word
func IsStopWord(word string) bool {
	return spanishStopWords[word]
}

// RemoveStopWords drops stop words from text. Punctuation attached to a word
// is ignored for the test, and kept words are returned unchanged.
func RemoveStopWords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		bare := strings.TrimLeft(textutil.TrimPunct(textutil.Lower(w)), "¿¡")
		if bare != "" && IsStopWord(bare) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
