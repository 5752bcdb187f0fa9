package country

import "fmt"

// Germany publishes German news for newcomers to Germany. Translations gloss
// every proper noun with its German spelling.
type Germany struct {
	settings Settings
}

var _ Profile = Germany{}

var germanGlossExamples = map[string]string{
	"ro": `- People: Cancelarul german Olaf Scholz(Olaf Scholz), Angela Merkel(Angela Merkel)
- Organizations: Volkswagen(Volkswagen), Banca Federală Germană(Deutsche Bundesbank)
- Places: Berlin(Berlin), München(München), Hamburg(Hamburg)`,
	"ar": `- People: المستشار الألماني أولاف شولتس(Olaf Scholz), أنغيلا ميركل(Angela Merkel)
- Organizations: فولكس فاغن(Volkswagen), البنك الفيدرالي الألماني(Deutsche Bundesbank)
- Places: برلين(Berlin), ميونخ(München), هامبورغ(Hamburg)`,
	"tr": `- People: Almanya Şansölyesi Olaf Scholz(Olaf Scholz), Angela Merkel(Angela Merkel)
- Organizations: Volkswagen(Volkswagen), Alman Federal Bankası(Deutsche Bundesbank)
- Places: Berlin(Berlin), Münih(München), Hamburg(Hamburg)`,
	"ru": `- People: Канцлер Германии Олаф Шольц(Olaf Scholz), Ангела Меркель(Angela Merkel)
- Organizations: Фольксваген(Volkswagen), Немецкий федеральный банк(Deutsche Bundesbank)
- Places: Берлин(Berlin), Мюнхен(München), Гамбург(Hamburg)`,
	"en": `- People: German Chancellor Olaf Scholz(Olaf Scholz), Angela Merkel(Angela Merkel)
- Organizations: Volkswagen(Volkswagen), German Federal Bank(Deutsche Bundesbank)
- Places: Berlin(Berlin), Munich(München), Hamburg(Hamburg)`,
}

func (g Germany) Settings() Settings { return g.settings }

func (g Germany) SummarizationPrompt(content string) string {
	return summarizationPrompt("German", content, g.settings.TitlePolicy == TitleAI)
}

func (g Germany) TranslationPrompt(lang string) string {
	if lang == g.settings.BaseLanguage {
		return translationPrompt("German", lang,
			"- Source and target language are the same, so do not add parentheses with the original text.", "")
	}

	examples, ok := germanGlossExamples[lang]
	if !ok {
		examples = germanGlossExamples["en"]
	}
	rule := fmt.Sprint(
		"STRICT REQUIREMENTS:\n",
		"1. Every proper noun (names, places, organizations, brands) in the summary MUST be followed by the original German text in parentheses.\n",
		"2. Format: Translation(Original)\n",
		"3. Apply this to every proper noun in the content.",
	)
	return translationPrompt("German", lang, rule, examples)
}

func (g Germany) TopPrompt(k int) string {
	return topPrompt(k, "a German news app targeted at newcomers to Germany", []string{
		"Prefer articles related to Germany or Europe when available",
		"If no Germany or Europe articles are available, select the most globally important news",
	}, true)
}
