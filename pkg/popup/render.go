package popup

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("popup").Parse(`<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="utf-8">
<title>BouwConnect</title>
</head>
<body>
<p>{{.Status}}</p>
<script>
(function () {
  var payload = {{.Payload}};
  if (window.opener) {
    window.opener.postMessage(payload, "*");
  }
  window.close();
})();
</script>
</body>
</html>
`))

type page struct {
	Status  string
	Payload map[string]any
}

// Render writes the page posting the envelope to the opener and closing the
// popup.
func Render(w io.Writer, e Envelope) error {
	status := "Verbinding geslaagd, dit venster wordt gesloten."
	if e.Kind == KindError {
		status = "Verbinden mislukt, dit venster wordt gesloten."
	}

	return pageTemplate.Execute(w, page{Status: status, Payload: e.Payload()})
}
