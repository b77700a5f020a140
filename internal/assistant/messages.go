package assistant

// Greeting is announced by the assistant once the daemon has connected its
// tool servers.
const Greeting = "🌍 I'm ready to help you plan your perfect trip! " +
	"I have access to real-time data about weather, locations, restaurants, flights, and hotels. " +
	"What would you like to know?"

// Welcome is the system message that seeds an empty or freshly cleared transcript.
const Welcome = `👋 Hello! I'm your Smart Travel Planning Assistant. I can help you plan your perfect trip using real-time data from various services.

Try asking me things like:
• "What's the weather like in Paris next week?"
• "Find me restaurants near the Eiffel Tower"
• "Plan a 3-day trip to Tokyo"`
