package game

// The bot speaks with a fixed persona; every reply below is kept exactly as
// the character wrote it.

const replyWelcome = `
Je suis 𝗞𝗔𝗚𝗘𝗢 2.0 , Aka 𝗧𝗛𝗔𝗗𝗗𝗘𝗨𝗦, the god of Kowloon.

Je suis un bot d'entraînement conçu par Izumi Heathcliff, exclusivement pour les Quiz de type LP. Mon but sera de te challenger au maximum. Mais avant de commencer, je veux que tu sache que :

« 𝙏𝙃𝙀 𝙊𝙉𝙇𝙔 𝙒𝙃𝙊 𝘾𝘼𝙉 𝘽𝙀𝘼𝙏 𝙈𝙀 𝙄𝙎 𝙈𝙀 »

Commandes disponibles:
/start - Afficher ce message
/duel_lp - Lancer un défi
/speed [wpm] - Définir ma vitesse d'écriture (20-200)
/add_modo - S'enregistrer comme modérateur
/modo_list - Voir la liste des modérateurs
/save_tab - Sauvegarder un tableau
/show_tab - Afficher un tableau sauvegardé
/end_game - Terminer la partie en cours
`

const (
	replySpeedUsage      = "Usage: /speed [20-200]"
	replySpeedRange      = "La vitesse doit être entre 20 et 200 WPM."
	replySpeedNotNumber  = "La vitesse doit être un nombre entier."
	replySpeedMax        = "Es-tu sûr de réussir a take fils ?🌛 "
	replySpeedConfirmFmt = "✅ Ma vitesse actuelle vient d'être définie sur %d WPM"

	replyDuelInProgress = "❌ Une partie est déjà en cours. Utilisez /end_game pour la terminer."
	replyDuelPrompt     = "Thaddeus accepte ton défi. Confirmes-tu le duel ? (Réponds par 'oui' pour confirmer)"
	replyDuelConfirmFmt = "Duel confirmé! Bienvenue challenger %s! 🌛⚡"
	replyDuelCancelled  = "Duel annulé."
	replyNoGame         = "❌ Aucune partie n'est en cours."
	replyGameOver       = "Partie terminée. Ja ne 🌛⚡"

	replyAlreadyModerator = "Vous êtes déjà modérateur."
	replyModeratorAdded   = "✅ %s a été ajouté comme modérateur."
	replyNoModerators     = "Aucun modérateur enregistré."
	replyModeratorHeader  = "Liste des modérateurs:\n"

	replySaveNeedsReply = "❌ Vous devez répondre au tableau que vous souhaitez sauvegarder."
	replyAskTableName   = "Donnez un nom à ce tableau:"
	replyTableNameEmpty = "❌ Le nom du tableau ne peut pas être vide."
	replyTableSavedFmt  = "✅ Tableau '%s' sauvegardé."
	replyNoTables       = "Aucun tableau sauvegardé."
	replyTableListFmt   = "Tableaux disponibles:\n%s\n\nRépondez avec le nom du tableau à afficher."
	replyTableNotFound  = "❌ Tableau non trouvé."

	replyQuestionFormat = "❌ Format incorrect. Exemple: Q/ A B"
	replyNoAnswer       = "❌ Aucune réponse trouvée pour ces lettres."
	replyTypingTimeFmt  = "⌛ Temps d'écriture : %vs"

	replyCalled   = "tu m'as appelé ? 🌛⚡"
	replyTryLater = "Une erreur s'est produite. Veuillez réessayer."
)
