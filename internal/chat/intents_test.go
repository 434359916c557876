package chat

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Intent
	}{
		{"Bonjour", IntentSalutations},
		{"HELLO there", IntentSalutations},
		{"Quels services proposez-vous ?", IntentServices},
		{"Combien ça coûte ?", IntentPrix},
		{"Quel est le tarif du plan Pro", IntentPrix},
		{"Votre numéro de téléphone ?", IntentContact},
		{"J'ai besoin d'aide", IntentAide},
		{"Merci beaucoup", IntentAurevoir},
		{"À bientôt", IntentAurevoir},
		{"zzz", IntentDefaut},
		{"", IntentDefaut},
		// earlier rules win when several match
		{"Bonjour, quel est le prix ?", IntentSalutations},
		{"Le prix du chatbot", IntentServices},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := Classify(tc.in); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestFoldStripsDiacritics(t *testing.T) {
	if got := fold("Téléphone À Bientôt"); got != "telephone a bientot" {
		t.Fatalf("fold = %q", got)
	}
}
