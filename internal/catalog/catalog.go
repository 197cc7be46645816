package catalog

type Category struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

type Model struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxTokens int    `json:"max_tokens"`
	Developer string `json:"developer"`
}

const DefaultModelID = "mixtral-8x7b-32768"

var Categories = []Category{
	{Key: "👨‍💻 Coding Assistance", Description: "Generate example questions that someone might ask when seeking code generation help. Ensure each question ends with a question mark."},
	{Key: "🎧 Music Suggestion", Description: "Generate example questions that someone might ask when looking for music recommendations or playlist ideas. Ensure each question ends with a question mark."},
	{Key: "🧑‍🍳 Recipe Ideas", Description: "Generate example questions that someone might ask when looking for meal or recipe suggestions. Ensure each question ends with a question mark."},
	{Key: "🌍 Travel Inspiration", Description: "Generate example questions that someone might ask when looking for travel destinations or vacation ideas. Ensure each question ends with a question mark."},
	{Key: "📈 Productivity Boost", Description: "Generate example questions that someone might ask when seeking advice on improving productivity or time management. Ensure each question ends with a question mark."},
	{Key: "🤔 Algorithm Explanation", Description: "Generate example questions that someone might ask when seeking explanations of specific algorithms. Ensure each question ends with a question mark."},
	{Key: "🧘 Wellness Tips", Description: "Generate example questions that someone might ask when looking for health and wellness advice. Ensure each question ends with a question mark."},
	{Key: "🎨 Creative Ideas", Description: "Generate example questions that someone might ask when looking for creative project suggestions or artistic inspiration. Ensure each question ends with a question mark."},
	{Key: "📚 Learning Techniques", Description: "Generate example questions that someone might ask when looking for effective study techniques or learning strategies. Ensure each question ends with a question mark."},
	{Key: "💡 Startup Advice", Description: "Generate example questions that someone might ask when seeking advice on starting or growing a business. Ensure each question ends with a question mark."},
	{Key: "👨‍👩‍👧 Parenting Tips", Description: "Generate example questions that someone might ask when looking for advice on parenting or child development. Ensure each question ends with a question mark."},
	{Key: "📊 Investment Ideas", Description: "Generate example questions that someone might ask when looking for investment suggestions or financial advice. Ensure each question ends with a question mark."},
	{Key: "🖌️ Art Techniques", Description: "Generate example questions that someone might ask when looking to learn art techniques or improve artistic skills. Ensure each question ends with a question mark."},
	{Key: "🐶 Pet Training", Description: "Generate example questions that someone might ask when looking for tips on training their pets. Ensure each question ends with a question mark."},
	{Key: "💭 Mindfulness Practices", Description: "Generate example questions that someone might ask when seeking ways to practice mindfulness or meditation. Ensure each question ends with a question mark."},
	{Key: "📱 Tech Reviews", Description: "Generate example questions that someone might ask when seeking reviews or recommendations for tech products. Ensure each question ends with a question mark."},
	{Key: "🏋️ Fitness Routines", Description: "Generate example questions that someone might ask when looking for workout routines or fitness tips. Ensure each question ends with a question mark."},
	{Key: "🍿 Movie Recommendations", Description: "Generate example questions that someone might ask when seeking movie suggestions or reviews. Ensure each question ends with a question mark."},
	{Key: "🛋️ Home Improvement", Description: "Generate example questions that someone might ask when seeking ideas for home improvement or DIY projects. Ensure each question ends with a question mark."},
	{Key: "🌱 Gardening Tips", Description: "Generate example questions that someone might ask when looking for gardening advice or plant care suggestions. Ensure each question ends with a question mark."},
}

var Models = []Model{
	{ID: "gemma-7b-it", Name: "Gemma-7b-it", MaxTokens: 3000, Developer: "Google"},
	{ID: "llama3-70b-8192", Name: "LLaMA3-70b-8192", MaxTokens: 8192, Developer: "Meta"},
	{ID: "llama3-8b-8192", Name: "LLaMA3-8b-8192", MaxTokens: 8192, Developer: "Meta"},
	{ID: "mixtral-8x7b-32768", Name: "Mixtral-8x7b-Instruct-v0.1", MaxTokens: 3000, Developer: "Mistral"},
}

func ModelByID(id string) (Model, bool) {
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

func CategoryByKey(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}
