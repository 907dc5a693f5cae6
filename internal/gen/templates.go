package gen

import (
	"bytes"
	"encoding/json"
	"text/template"
)

// templateData holds everything a dispatch template needs.
type templateData struct {
	Marker   string
	Open     string
	Close    string
	Operator string
	Key      string
	Left     string
	Right    string
	Argument string
	Negated  bool
}

var templateFuncs = template.FuncMap{
	"quote": jsString,
}

var binaryTemplate = template.Must(template.New("binary").Funcs(templateFuncs).Parse(`{{.Open}}
  "{{.Marker}}";
  const __lhs = {{.Left}};
  const __rhs = {{.Right}};
  const __sym = Symbol.for({{quote .Key}});
  return __lhs != null && __lhs[__sym] !== undefined
    ? __lhs[__sym](__rhs)
    : (__lhs {{.Operator}} __rhs);
{{.Close}}`))

var membershipTemplate = template.Must(template.New("membership").Funcs(templateFuncs).Parse(`{{.Open}}
  "{{.Marker}}";
  const __key = {{.Left}};
  const __obj = {{.Right}};
  const __sym = Symbol.for({{quote .Key}});
  return __obj != null && __obj[__sym] !== undefined
    ? __obj[__sym](__key)
    : __key in __obj;
{{.Close}}`))

var equalityTemplate = template.Must(template.New("equality").Funcs(templateFuncs).Parse(`{{if .Negated}}!{{end}}{{.Open}}
  "{{.Marker}}";
  const __lhs = {{.Left}};
  const __rhs = {{.Right}};
  const __sym = Symbol.for({{quote .Key}});
  const __res = __lhs != null && __lhs[__sym] !== undefined
    ? __lhs[__sym](__rhs)
    : __lhs {{.Operator}} __rhs;
  return !!__res;
{{.Close}}`))

var unaryTemplate = template.Must(template.New("unary").Funcs(templateFuncs).Parse(`{{.Open}}
  "{{.Marker}}";
  const __arg = {{.Argument}};
  const __sym = Symbol.for({{quote .Key}});
  return __arg != null && __arg[__sym] !== undefined
    ? __arg[__sym]()
    : ({{.Operator}}__arg);
{{.Close}}`))

const (
	syncOpen   = "(() => {"
	syncClose  = "})()"
	asyncOpen  = "(await (async () => {"
	asyncClose = "})())"
)

func execute(t *template.Template, data *templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
