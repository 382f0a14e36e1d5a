package checkout

import (
	"bytes"
	"html/template"
	"sort"

	"github.com/go-faster/errors"
)

// The gateway expects its parameters back as a browser form submission,
// not an API call, so the redirect is materialized as a self-submitting
// HTML page carrying every parameter as a hidden field.
var formTemplate = template.Must(template.New("gateway").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Redirecting to payment</title></head>
<body onload="document.forms[0].submit()">
<form method="POST" action="{{.URL}}">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`))

type formField struct {
	Name  string
	Value string
}

// HTML renders the auto-submitting form document. Fields are emitted in
// sorted name order so output is stable.
func (p *GatewayPost) HTML() ([]byte, error) {
	fields := make([]formField, 0, len(p.Params))
	for name, value := range p.Params {
		fields = append(fields, formField{Name: name, Value: value})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	var buf bytes.Buffer
	err := formTemplate.Execute(&buf, struct {
		URL    string
		Fields []formField
	}{URL: p.URL, Fields: fields})
	if err != nil {
		return nil, errors.Wrap(err, "render gateway form")
	}
	return buf.Bytes(), nil
}
