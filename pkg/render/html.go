package render

import (
	"html/template"
	"io"
)

var (
	pageTmpl     = template.Must(template.New("page").Parse(pageHTML))
	notFoundTmpl = template.Must(template.New("notfound").Parse(notFoundHTML))
)

// RenderPage writes the public profile page.
func RenderPage(w io.Writer, v PageView) error {
	return pageTmpl.Execute(w, v)
}

type notFoundView struct {
	Title       string
	HomepageURL string
}

// RenderNotFound writes the page shown for unknown profiles.
func RenderNotFound(w io.Writer, homepageURL string) error {
	return notFoundTmpl.Execute(w, notFoundView{Title: DefaultTitle, HomepageURL: homepageURL})
}

const pageHTML = `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Head.Title}}</title>
<meta name="description" content="{{.Head.Description}}">
<meta property="og:title" content="{{.Head.Title}}">
<meta property="og:description" content="{{.Head.Description}}">
<meta property="og:url" content="{{.Head.URL}}">
<meta property="og:image" content="{{.Head.Image}}">
<meta property="og:type" content="profile">
<meta name="twitter:title" content="{{.Head.Title}}">
<meta name="twitter:description" content="{{.Head.Description}}">
<meta name="twitter:image" content="{{.Head.Image}}">
<meta name="twitter:card" content="summary_large_image">
{{- with .Head.FontURL}}
<link id="custom-profile-font" rel="stylesheet" href="{{.}}">
{{- end}}
</head>
<body>
<div data-creator-profile-container class="profile" style="{{.ContainerStyle}}">
  <header class="topbar">
    <a class="brand" href="{{.HomepageURL}}"><img src="https://cdn.crewmaster.net/brand/Icon-No-bg.svg" alt="CrewMaster" width="40" height="40"></a>
    <button type="button" class="share" id="share-button" aria-label="Condividi">Share</button>
  </header>

  <section class="identity">
    <div class="avatar">
    {{- if .Avatar}}
      <img src="{{.Avatar}}" alt="{{.DisplayName}}">
    {{- else}}
      <div class="avatar-initial" style="{{.AvatarStyle}}">{{.AvatarInitial}}</div>
    {{- end}}
    </div>
    <h1>@{{.Username}}</h1>
    {{- if .ShowDisplayName}}
    <p class="display-name">{{.DisplayName}}</p>
    {{- end}}
    <p class="bio">{{.Bio}}</p>
  </section>

  <main class="links">
  {{- range .Videos}}
    {{- if .Embedded}}
    <div class="video video-embed" style="{{.Style}}">
      <div class="video-frame"><iframe src="{{.EmbedURL}}" title="{{.Title}}" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>
      <p class="video-title">{{.Title}}</p>
    </div>
    {{- else if .LargeCover}}
    <a class="video video-cover" href="{{.URL}}" target="_blank" rel="noopener noreferrer" style="{{.Style}}">
      <div class="video-thumb"><img src="{{.Thumbnail}}" alt="{{.Title}}"><span class="play" style="{{$.PlayStyle}}">&#9654;</span></div>
      <p class="video-title">{{.Title}}</p>
      <p class="video-platform">{{.Platform}}</p>
    </a>
    {{- else}}
    <a class="video video-row" href="{{.URL}}" target="_blank" rel="noopener noreferrer" style="{{.Style}}">
      <img class="video-thumb-small" src="{{.Thumbnail}}" alt="{{.Title}}">
      <span class="video-meta"><span class="video-title">{{.Title}}</span><span class="video-platform">{{.Platform}}</span></span>
    </a>
    {{- end}}
  {{- end}}
  {{- range .Links}}
    <a class="link{{if .Featured}} link-featured{{end}}" data-link-id="{{.ID}}" data-platform="{{.Platform}}" href="{{.URL}}" target="_blank" rel="noopener noreferrer" style="{{.Style}}">
      <span class="link-icon">{{if .Thumbnail}}<img src="{{.Thumbnail}}" alt="{{.Title}}">{{end}}</span>
      <span class="link-title">{{.Title}}</span>
      {{- if .Live}}
      <span class="live-indicator">LIVE</span>
      {{- end}}
      {{- with .Badge}}
      <span class="badge" style="{{.Style}}">{{.Text}}</span>
      {{- end}}
    </a>
  {{- end}}
  </main>

  <footer style="{{.FooterStyle}}">
    <a class="cta" href="/">Crea la tua pagina su LinkPulse</a>
    <nav><a href="/privacy">Privacy</a> &bull; <a href="/terms">Termini</a> &bull; <a href="/report">Segnala</a></nav>
  </footer>
</div>
<script>
(function () {
  var title = {{.ShareTitle}};
  var text = {{.Bio}};
  document.getElementById("share-button").addEventListener("click", function () {
    var url = window.location.href;
    if (navigator.share) {
      navigator.share({ title: title, text: text, url: url }).catch(function (err) {
        if (err && err.name !== "AbortError") { alert("Impossibile condividere"); }
      });
      return;
    }
    navigator.clipboard.writeText(url).then(function () {
      alert("Link copiato negli appunti!");
    }, function () {
      alert("Impossibile condividere");
    });
  });
})();
</script>
</body>
</html>
`

const notFoundHTML = `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div class="not-found">
  <h1>Profile Not Found</h1>
  <p>The creator you're looking for doesn't exist or the link is invalid.</p>
  <a href="{{.HomepageURL}}">Go to Homepage</a>
</div>
</body>
</html>
`
