package chat

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Intent is the category a visitor message falls into.
type Intent string

const (
	IntentSalutations Intent = "salutations"
	IntentServices    Intent = "services"
	IntentPrix        Intent = "prix"
	IntentContact     Intent = "contact"
	IntentAide        Intent = "aide"
	IntentAurevoir    Intent = "aurevoir"
	IntentDefaut      Intent = "defaut"
)

type rule struct {
	intent   Intent
	keywords []string
}

// Rules are evaluated in order and the first substring hit wins.
var rules = []rule{
	{IntentSalutations, []string{"bonjour", "salut", "hello", "hey", "hi"}},
	{IntentServices, []string{"service", "chatbot", "solution", "offre", "produit"}},
	{IntentPrix, []string{"prix", "tarif", "cout", "euro", "plan", "abonnement"}},
	{IntentContact, []string{"contact", "email", "telephone", "joindre", "appeler"}},
	{IntentAide, []string{"aide", "help", "comment", "assistance", "info"}},
	{IntentAurevoir, []string{"au revoir", "bye", "merci", "a bientot", "ciao"}},
}

// Classify maps free text to an intent.
func Classify(text string) Intent {
	msg := fold(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(msg, kw) {
				return r.intent
			}
		}
	}
	return IntentDefaut
}

// fold lowercases s and strips combining marks, so "Téléphone" becomes "telephone".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
