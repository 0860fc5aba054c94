package email

// Email - одно письмо. Template заполняется при рендеринге и нужен только для логов.
type Email struct {
	From     string
	ReplyTo  string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
	Template string
}

// TemplateData - данные для шаблонов писем (Username, Code, Reason...)
type TemplateData map[string]interface{}
