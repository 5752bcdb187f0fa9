package country

// Canada publishes English news for newcomers to Canada.
type Canada struct {
	settings Settings
}

var _ Profile = Canada{}

func (c Canada) Settings() Settings { return c.settings }

func (c Canada) SummarizationPrompt(content string) string {
	return summarizationPrompt("English", content, c.settings.TitlePolicy == TitleAI)
}

func (c Canada) TranslationPrompt(lang string) string {
	return translationPrompt("English", lang,
		"- Keep proper nouns (names, locations, organizations) in English within parentheses in the summary.", "")
}

func (c Canada) TopPrompt(k int) string {
	return topPrompt(k, "a Canadian news app targeted at newcomers to Canada", []string{
		"Prioritize articles directly related to Canada or North America (especially Canada and the US)",
	}, false)
}
