package email

import (
	"bytes"
	"html/template"
)

// Campaign bodies arrive as HTML authored in the CRM; lead messages are plain
// text. Both get wrapped in the same minimal layout.
var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="pt">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px 12px;">
      <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">
        <tr><td style="padding:20px 28px;background:#1d3557;border-radius:8px 8px 0 0;">
          <span style="color:#ffffff;font-size:18px;font-weight:bold;">AtlasCasa</span>
        </td></tr>
        <tr><td style="padding:28px;color:#27272a;font-size:15px;line-height:1.6;">
          <p style="margin-top:0;">{{.Greeting}}</p>
          {{.BodyHTML}}
        </td></tr>
        <tr><td style="padding:16px 28px;color:#a1a1aa;font-size:12px;border-top:1px solid #e4e4e7;">
          AtlasCasa · Mediação Imobiliária
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

type layoutData struct {
	Title    string
	Greeting string
	Body     string
}

func renderLayout(data layoutData) (string, error) {
	var buf bytes.Buffer
	err := layoutTmpl.Execute(&buf, struct {
		Title    string
		Greeting string
		BodyHTML template.HTML
	}{
		Title:    data.Title,
		Greeting: data.Greeting,
		BodyHTML: template.HTML(data.Body),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
