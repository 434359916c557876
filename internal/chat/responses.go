package chat

var templates = map[Intent][]string{
	IntentSalutations: {
		"Bonjour ! Comment puis-je vous aider ?",
		"Salut ! Que puis-je faire pour vous ?",
		"Hello ! En quoi puis-je vous assister ?",
	},
	IntentServices: {
		"Nous créons des chatbots IA pour votre site web. Intégration simple en 5 minutes !",
		"NexGen propose des solutions de chatbot intelligents et personnalisables.",
	},
	IntentPrix: {
		"Nos tarifs :\n• Starter : 29€/mois\n• Pro : 79€/mois\n• Enterprise : sur devis",
		"À partir de 29€/mois pour le plan de base. Contactez-nous pour plus d'infos !",
	},
	IntentContact: {
		"Email : hello@nexgen-labs.com\nTéléphone : +33 1 23 45 67 89",
		"Vous pouvez nous écrire à hello@nexgen-labs.com ou utiliser ce chat !",
	},
	IntentAide: {
		"Je peux vous renseigner sur nos services, tarifs et vous mettre en contact avec l'équipe.",
		"Posez-moi vos questions sur NexGen, nos solutions ou nos tarifs !",
	},
	IntentDefaut: {
		"Je ne suis pas sûr de comprendre. Pouvez-vous reformuler ?",
		"Désolé, je n'ai pas la réponse. Contactez notre équipe pour plus d'aide !",
		"Question intéressante ! Notre équipe pourra mieux vous répondre.",
	},
	IntentAurevoir: {
		"Au revoir ! N'hésitez pas à revenir si vous avez d'autres questions.",
		"À bientôt ! Bonne journée !",
	},
}

// DefaultWelcome opens a conversation when no company greeting is configured.
const DefaultWelcome = "Bonjour ! Posez-moi vos questions sur NexGen 🚀"

// Templates returns the canned replies for intent. Unknown intents get the default set.
func Templates(intent Intent) []string {
	if t, ok := templates[intent]; ok {
		return t
	}
	return templates[IntentDefaut]
}
