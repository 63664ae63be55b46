package fallback

import "github.com/lexiquest/lexiquest/pkg/game"

var segments = map[game.Genre][]entry{
	game.GenreForest: {
		{
			story:        "You step into a peaceful forest where wise animals gather around a crystal stream. A friendly owl perches nearby, ready to share ancient secrets.",
			question:     "Which word means knowledge gained from experience?",
			choices:      [4]string{"Ask the owl for wisdom", "Follow the crystal stream", "Meet the forest animals", "Sit by the water"},
			correctIndex: 0,
			hint:         "The owl is famous for having it.",
			challenge: &game.WordChallenge{
				Type:   "word_matching",
				Word:   "wisdom",
				Prompt: "Match 'wisdom' with its meaning: knowledge, sadness, or hunger?",
				Answer: "knowledge",
			},
		},
		{
			story:        "A magical garden opens before you, full of singing flowers. A gentle butterfly lands on your shoulder and points its wing toward a sparkling pond.",
			question:     "What do we call a place where flowers grow?",
			choices:      [4]string{"Follow the butterfly", "Listen to the singing flowers", "Explore the sparkling pond", "Search for hidden treasure"},
			correctIndex: 0,
			hint:         "You are standing in one right now.",
			challenge: &game.WordChallenge{
				Type:   "word_completion",
				Word:   "garden",
				Prompt: "Complete this word: g_rd_n (a place where flowers grow)",
				Answer: "garden",
			},
		},
		{
			story:        "Deep in the woods you discover an enchanted treehouse. A squirrel in a tiny hat waves you up the rope ladder to see its chronicle of forest adventures.",
			question:     "Which word means a written record of events?",
			choices:      [4]string{"Read the chronicle", "Climb higher into the tree", "Wave back at the squirrel", "Look out over the forest"},
			correctIndex: 0,
			hint:         "It is a kind of book that tells a story in order.",
		},
	},
	game.GenreSpace: {
		{
			story:        "Your spaceship lands on a beautiful planet with purple skies and silver trees. Friendly creatures watch curiously from behind crystal rocks, and your scanner beeps at something nearby.",
			question:     "Which word means to find something for the first time?",
			choices:      [4]string{"Discover what the scanner found", "Greet the friendly creatures", "Study the crystal rocks", "Climb a silver tree"},
			correctIndex: 0,
			hint:         "Explorers love to do this.",
			challenge: &game.WordChallenge{
				Type:   "spelling",
				Word:   "discover",
				Prompt: "Spell the word that means to find something new",
				Answer: "discover",
			},
		},
		{
			story:        "You float aboard an amazing space station among colorful nebulae. A helpful robot offers to illuminate the observation deck so you can see distant galaxies.",
			question:     "Which word means to light something up?",
			choices:      [4]string{"Let the robot illuminate the deck", "Ask about the nebulae", "Visit the control room", "Wave at a passing comet"},
			correctIndex: 0,
			hint:         "Think of what a lamp does to a dark room.",
		},
		{
			story:        "A shimmering portal hums at the edge of the star dock. The station's guardian, a kind alien scientist, explains that it leads to a sanctuary of floating lights.",
			question:     "Which word means a doorway to another place?",
			choices:      [4]string{"Step through the portal", "Ask the guardian a question", "Watch the floating lights", "Check your star map"},
			correctIndex: 0,
			hint:         "It sounds a little like 'door' and 'gateway' put together.",
		},
	},
	game.GenreDungeon: {
		{
			story:        "You approach a friendly castle where colorful flags wave in the breeze. A kind knight welcomes you and offers to show you the ancient halls below.",
			question:     "What is a big, strong building where kings and queens live?",
			choices:      [4]string{"Explore the castle towers", "Visit the royal garden", "Meet the castle pets", "Study the waving flags"},
			correctIndex: 0,
			hint:         "It has towers, walls, and sometimes a moat.",
			challenge: &game.WordChallenge{
				Type:   "spelling",
				Word:   "castle",
				Prompt: "Spell the word for a big, strong building where kings and queens live",
				Answer: "castle",
			},
		},
		{
			story:        "Torchlight flickers along the dungeon walls, revealing a treasure chest guarded by a cheerful stone golem. It promises the treasure to anyone brave enough to solve its riddle.",
			question:     "Which word means valuable things that are hidden or stored?",
			choices:      [4]string{"Answer the golem's riddle", "Look closely at the chest", "Ask the golem its name", "Study the torch patterns"},
			correctIndex: 0,
			hint:         "Pirates bury it and draw maps to find it.",
		},
		{
			story:        "A spiral staircase leads to a glowing library carved from rock. The librarian, a polite skeleton in reading glasses, says perseverance is the key to every puzzle here.",
			question:     "Which word means refusing to give up?",
			choices:      [4]string{"Try the first puzzle", "Browse the glowing shelves", "Chat with the librarian", "Sketch a map of the room"},
			correctIndex: 0,
			hint:         "It means you keep trying even when something is hard.",
		},
	},
	game.GenreMystery: {
		{
			story:        "You arrive at a curious mansion where something mysterious has happened. The friendly butler greets you warmly and mentions clues waiting to be found.",
			question:     "Which word describes something strange and hard to explain?",
			choices:      [4]string{"Investigate the library", "Question the butler", "Examine the front hall", "Check the garden path"},
			correctIndex: 0,
			hint:         "It starts the same way as 'mystery'.",
			challenge: &game.WordChallenge{
				Type:   "word_completion",
				Word:   "mysterious",
				Prompt: "Complete this word: myst_r_ous (strange and hard to explain)",
				Answer: "mysterious",
			},
		},
		{
			story:        "In the charming library, books seem to move on their own. The helpful librarian whispers that one volume holds the chronicle of the mansion's greatest expedition.",
			question:     "Which word means a long journey made to explore?",
			choices:      [4]string{"Find the expedition chronicle", "Watch the moving books", "Interview the librarian", "Search behind the shelves"},
			correctIndex: 0,
			hint:         "Explorers go on one to discover new places.",
		},
		{
			story:        "The old clock tower chimes thirteen times. A kind inspector hands you a magnifying glass and says your courage will be needed to solve this puzzle.",
			question:     "Which word means being brave when something is scary?",
			choices:      [4]string{"Climb the clock tower", "Inspect the clock face", "Ask about the thirteenth chime", "Note the time in your notebook"},
			correctIndex: 0,
			hint:         "Lions are the classic symbol of it.",
		},
	},
}

var responses = map[category][]string{
	catLook: {
		"You discover something magnificent! The ancient walls tell stories of brave adventurers, and a mysterious symbol catches your eye. What would you like to examine more closely?",
		"Your keen eyes spot something interesting! A beautiful crystal seems to illuminate the whole area. The treasure might be nearby. What's your next move?",
		"You observe your surroundings with wisdom! A hidden portal becomes visible when you look carefully. This expedition is full of surprises! Where do you want to explore?",
	},
	catMove: {
		"You courageously move forward! The path leads to an enchanted garden with singing flowers, and a friendly guardian appears to help you. What do you want to ask them?",
		"You discover a sanctuary filled with glowing books. Each chronicle contains a different story. Which one interests you most?",
		"You transform your journey by choosing a new direction! Ahead lies a magnificent labyrinth of silver and gold. Do you want to solve its riddle?",
	},
	catTalk: {
		"The character smiles warmly and shares their wisdom! They tell you about a hidden treasure that takes perseverance to find, and offer to help with your quest. Do you accept?",
		"Your friendly conversation reveals important clues! They mention an ancient expedition that discovered something wonderful nearby. Would you like to hear the whole chronicle?",
		"They greet you with enthusiasm! This guardian knows many secrets about the mysterious portal ahead and is happy to illuminate the path. What do you want to learn?",
	},
	catUse: {
		"Brilliant idea! The enchanted item responds to your touch and begins to glow. Ancient magic recognizes your courage. What do you want to try next?",
		"Excellent thinking! The treasure has special powers that help brave adventurers, and the guardian congratulates your perseverance. What's your next adventure?",
		"What a clever choice! The mysterious object transforms and reveals a hidden message. This expedition is leading to amazing discoveries! How do you want to continue?",
	},
	catGeneral: {
		"What an excellent idea! Your creative thinking leads to an unexpected discovery, and the mysterious puzzle begins to make sense. What's your next brilliant move?",
		"Your courage and wisdom guide you well! The ancient magic responds to your perseverance. How do you want to continue your expedition?",
		"Outstanding thinking! The guardian of this sanctuary appears and praises your wisdom. They offer to share the chronicle of adventurers who succeeded here. Are you interested?",
	},
}

var endings = []string{
	"What an incredible adventure you've completed! Your courage, wisdom, and perseverance led to amazing discoveries, and the treasure you found is everything you learned along the way. Thanks for playing!",
	"Magnificent work, brave adventurer! You discovered the most valuable treasure of all, the wisdom gained on your expedition. Everyone you met will remember your kindness. Thanks for playing!",
	"Outstanding adventure! The ancient chronicles will tell of your courage for years to come. You've truly earned the title of Master Adventurer! Thanks for playing!",
}

var hints = map[string]string{
	"word_completion": "Try sounding out the missing letters! Think about what sounds you hear in the word.",
	"word_matching":   "Think about what the word means! Which choice has the same meaning?",
	"spelling":        "Say the word slowly and listen to each sound! What letters make those sounds?",
}
