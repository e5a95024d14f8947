package llm

import (
	"strings"

	"RealEgo_Backend/internal/models"
	"RealEgo_Backend/internal/timeline"
)

// BuildSystemPrompt renders the greeting, the non-empty profile fields and the recalled memories.
func BuildSystemPrompt(username string, profile models.Profile, memories []string) string {
	if username == "" {
		username = "User"
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant for " + username + ".")
	b.WriteString("\n\nUser Profile:\n")
	for _, f := range profile.Fields() {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		b.WriteString(f.Label + ": " + f.Value + "\n")
	}
	b.WriteString("\n\nRelevant Memories:\n")
	for _, m := range memories {
		b.WriteString("- " + m + "\n")
	}
	return b.String()
}

// buildExtractionPrompt asks for the nine timeline categories as a JSON object.
func buildExtractionPrompt(currentTimeline, transcript string) string {
	if strings.TrimSpace(currentTimeline) == "" {
		currentTimeline = "{}"
	}

	var b strings.Builder
	b.WriteString("You are a data extraction assistant.\n")
	b.WriteString("Extract information from the user's spoken input into the following JSON structure.\n")
	b.WriteString("Only update fields that are mentioned. Keep existing data if not contradicted.\n\n")
	b.WriteString("Categories:\n")
	keys := timeline.Keys()
	for _, c := range timeline.Categories() {
		b.WriteString(c.Key + ": " + c.Description + "\n")
	}
	b.WriteString("\nCurrent Data: " + currentTimeline + "\n\n")
	b.WriteString("User Input: \"" + transcript + "\"\n\n")
	b.WriteString("Return ONLY the updated JSON. Keys must be: \"" + strings.Join(keys, "\", \"") + "\".\n")
	b.WriteString("Each value should be a string or object with details.")
	return b.String()
}
