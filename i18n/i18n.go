package i18n

import (
	"fmt"
	"strings"
)

// Minimal message catalog. Portuguese is the primary language of the product
// (the gym operates in Brazil); English is kept for development convenience.

const defaultLang = "pt"

var messages = map[string]map[string]string{
	"pt": {
		"radar.overdue":      "Vencido há %d dias",
		"radar.due_today":    "Vence Hoje",
		"radar.due_in":       "Vence em %d dias",
		"reminder.overdue":   "seu plano venceu no dia %s",
		"reminder.due_today": "seu plano vence hoje",
		"reminder.due_in":    "lembrete: seu plano vence em %d dias (%s)",
		"reminder.greeting":  "Olá %s, %s. Vamos garantir sua renovação para continuar treinando sem pausas?",
		"required":           "Obrigatório",
		"invalid_plan":       "Plano inválido",
		"not_found":          "Registro não encontrado",
	},
	"en": {
		"radar.overdue":      "Overdue by %d days",
		"radar.due_today":    "Due today",
		"radar.due_in":       "Due in %d days",
		"reminder.overdue":   "your plan expired on %s",
		"reminder.due_today": "your plan expires today",
		"reminder.due_in":    "reminder: your plan expires in %d days (%s)",
		"reminder.greeting":  "Hi %s, %s. Shall we renew so you can keep training without a break?",
		"required":           "Required",
		"invalid_plan":       "Invalid plan",
		"not_found":          "Record not found",
	},
}

// T returns the translation for code in lang, falling back to the default
// language, then to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[defaultLang][code]; ok {
		return s
	}
	return code
}

// Tf translates code and applies fmt verbs with args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

// DetectLanguage picks a supported language from an Accept-Language header,
// defaulting to Portuguese.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if tag == "" {
			continue
		}
		primary := strings.SplitN(tag, "-", 2)[0]
		if _, ok := messages[primary]; ok {
			return primary
		}
	}
	return defaultLang
}
