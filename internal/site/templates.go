package site

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.Brand}}</title>
  <link rel="stylesheet" href="{{.StyleHref}}">
</head>
<body data-lang="{{.Lang}}" data-root="{{.Root}}" data-search-index="{{.SearchIndexHref}}"{{if not .Static}} data-live="1"{{end}}{{if .Semantic}} data-semantic="1"{{end}}>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <span class="brand">{{.Brand}}</span>
      <input type="text" id="search-input" placeholder="{{.SearchLabel}}" autocomplete="off">
      <ul class="search-results" id="search-results" data-empty="{{.NoResultsLabel}}"></ul>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.Sidebar}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <header class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Menu">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      {{if .Static}}
      <a class="lang-toggle" href="{{.ToggleHref}}" title="{{.ToggleLabel}}">
        <span{{if eq .Lang "es"}} class="on"{{end}}>ES</span>|<span{{if eq .Lang "en"}} class="on"{{end}}>EN</span>
      </a>
      {{else}}
      <form method="post" action="/lang/toggle" class="lang-form">
        <input type="hidden" name="return" value="{{.CurrentID}}">
        <button type="submit" class="lang-toggle" title="{{.ToggleLabel}}">
          <span{{if eq .Lang "es"}} class="on"{{end}}>ES</span>|<span{{if eq .Lang "en"}} class="on"{{end}}>EN</span>
        </button>
      </form>
      {{end}}
    </header>
    <article class="page-content">
      {{if .Found}}
      <div class="page-header">
        <span class="part-title">{{.PartTitle}}</span>
        <span class="section-title">{{.SectionTitle}}</span>
        <h1>{{.Title}}</h1>
        {{if .PartDescription}}<p class="part-description">{{.PartDescription}}</p>{{end}}
      </div>
      <div class="prose" id="{{.CurrentID}}">
        {{.Content}}
      </div>
      <footer class="page-nav">
        {{with .Prev}}<a class="prev" href="{{.Href}}"><span class="label">{{.Label}}</span><span class="title">&larr; {{.Title}}</span></a>{{else}}<span></span>{{end}}
        {{with .Next}}<a class="next" href="{{.Href}}"><span class="label">{{.Label}}</span><span class="title">{{.Title}} &rarr;</span></a>{{else}}<span></span>{{end}}
      </footer>
      {{else}}
      <div class="not-found">{{.Placeholder}}</div>
      {{end}}
    </article>
  </main>
  <script src="{{.ScriptHref}}"></script>
</body>
</html>`

// redirectTemplate is the export root index.html.
const redirectTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta http-equiv="refresh" content="0; url=%s">
</head>
<body><a href="%s">Docs 3DGS</a></body>
</html>
`

// cssContent is the full CSS for the documentation site.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #020617;
  --bg-secondary: #0f172a;
  --bg-sidebar: #020617;
  --text: #cbd5e1;
  --text-strong: #ffffff;
  --text-muted: #64748b;
  --border: #1e293b;
  --accent: #818cf8;
  --accent-light: rgba(99, 102, 241, 0.1);
  --code-bg: #0f172a;
  --sidebar-width: 288px;
  --content-max-width: 896px;
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  font-size: 16px;
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  display: flex;
  min-height: 100vh;
}

a { color: var(--accent); text-decoration: none; }
a:hover { color: var(--text-strong); }

/* ============ Sidebar ============ */
.sidebar {
  position: fixed;
  inset: 0 auto 0 0;
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  overflow-y: auto;
  z-index: 50;
  transform: translateX(-100%);
  transition: transform 0.3s ease;
}
.sidebar.open { transform: translateX(0); }
.sidebar-header { padding: 16px 20px; border-bottom: 1px solid var(--border); }
.brand { display: block; color: var(--accent); font-weight: 700; font-size: 1.25rem; margin-bottom: 12px; }
#search-input {
  width: 100%;
  padding: 6px 10px;
  background: var(--bg-secondary);
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
}
.search-results { list-style: none; margin-top: 8px; font-size: 0.85rem; }
.search-results li { padding: 4px 0; }
.search-results .snippet { display: block; color: var(--text-muted); font-size: 0.75rem; }
.sidebar-tree { padding: 16px; }
.sidebar-tree ul { list-style: none; }
.part { margin-bottom: 12px; }
.part form { display: block; }
.part-toggle {
  width: 100%;
  text-align: left;
  background: none;
  border: none;
  color: #e2e8f0;
  font-weight: 600;
  font-size: 0.875rem;
  padding: 8px;
  border-radius: 4px;
  cursor: pointer;
}
.part-toggle::before { content: "\25B8  "; }
.part.expanded > .part-toggle::before,
.part.expanded form .part-toggle::before { content: "\25BE  "; }
.part-toggle:hover { background: var(--bg-secondary); }
.part:not(.expanded) > .sections { display: none; }
.sections { margin-left: 8px; padding-left: 8px; border-left: 1px solid var(--border); }
.sections > li > a { display: block; font-size: 0.875rem; padding: 6px 12px; border-radius: 4px; color: #94a3b8; }
.sections > li.active > a { background: var(--accent-light); color: var(--accent); border: 1px solid rgba(99, 102, 241, 0.2); }
.subsections { margin: 4px 0 4px 12px; font-size: 0.8rem; }
.subsections a { display: block; padding: 3px 8px; color: var(--text-muted); }
.subsections li.active a { color: var(--text-strong); }
.sidebar-overlay { display: none; position: fixed; inset: 0; background: rgba(0, 0, 0, 0.5); z-index: 40; }
.sidebar-overlay.visible { display: block; }

/* ============ Content ============ */
.content { flex: 1; min-width: 0; display: flex; flex-direction: column; }
.top-bar {
  height: 64px;
  position: sticky;
  top: 0;
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 0 24px;
  background: rgba(2, 6, 23, 0.8);
  backdrop-filter: blur(6px);
  border-bottom: 1px solid var(--border);
  z-index: 30;
}
.menu-toggle { background: none; border: none; color: var(--text); cursor: pointer; }
.lang-form { margin-left: auto; }
.lang-toggle {
  margin-left: auto;
  display: inline-flex;
  gap: 6px;
  padding: 6px 16px;
  border-radius: 999px;
  background: var(--bg-secondary);
  border: 1px solid #334155;
  color: #334155;
  font: 700 0.75rem monospace;
  cursor: pointer;
}
.lang-toggle span { color: #475569; }
.lang-toggle span.on { color: var(--text-strong); }
.lang-toggle:hover { border-color: var(--accent); }
.page-content { max-width: var(--content-max-width); width: 100%; margin: 0 auto; padding: 48px 24px 80px; }
.page-header { border-bottom: 1px solid var(--border); padding-bottom: 24px; margin-bottom: 32px; }
.part-title { display: block; color: var(--accent); font-size: 0.75rem; font-weight: 700; letter-spacing: 0.08em; text-transform: uppercase; }
.section-title { display: block; color: var(--text-muted); font-size: 0.9rem; margin-top: 4px; }
.page-header h1 { color: var(--text-strong); font-size: 2.25rem; font-weight: 800; margin: 8px 0 12px; }
.part-description { color: #94a3b8; font-size: 1.125rem; }
.prose h2, .prose h3 { color: #e2e8f0; margin: 32px 0 12px; }
.prose p, .prose ul, .prose ol, .prose blockquote { margin-bottom: 16px; }
.prose ul, .prose ol { padding-left: 24px; }
.prose strong { color: var(--text-strong); }
.prose blockquote { border-left: 3px solid var(--accent); padding: 8px 16px; color: #94a3b8; font-style: italic; background: var(--bg-secondary); }
.prose code { background: var(--code-bg); padding: 2px 6px; border-radius: 4px; }
.not-found { padding: 40px; text-align: center; color: var(--text-muted); }
.page-nav { margin-top: 64px; padding-top: 32px; border-top: 1px solid var(--border); display: flex; justify-content: space-between; gap: 16px; }
.page-nav a { display: flex; flex-direction: column; }
.page-nav .next { align-items: flex-end; }
.page-nav .label { font-size: 0.75rem; color: var(--text-muted); text-transform: uppercase; font-weight: 700; }
.page-nav .title { color: var(--text); font-weight: 500; }

/* ============ Demos ============ */
.demo {
  margin: 32px 0;
  padding: 20px;
  background: var(--bg-secondary);
  border: 1px solid var(--border);
  border-radius: 12px;
}
.demo figcaption { color: var(--text-strong); font-weight: 700; margin-bottom: 12px; }
.demo-canvas svg { width: 100%; height: auto; display: block; border-radius: 8px; }
.demo-controls { display: flex; flex-wrap: wrap; gap: 12px; margin-top: 16px; align-items: center; }
.demo-controls button {
  padding: 6px 14px;
  border-radius: 6px;
  border: 1px solid #334155;
  background: #1e293b;
  color: var(--text);
  cursor: pointer;
}
.demo-controls button:hover { border-color: var(--accent); }
.demo-slider { display: flex; gap: 8px; align-items: center; font-size: 0.85rem; }
.demo-choice { display: inline-flex; gap: 6px; align-items: center; font-size: 0.85rem; }

@media (min-width: 1024px) {
  .sidebar { transform: none; }
  .content { margin-left: var(--sidebar-width); }
  .menu-toggle { display: none; }
}
`

// jsContent drives the sidebar, the search box and, on live pages, the
// websocket connection to the widget host.
const jsContent = `(function() {
  "use strict";

  var body = document.body;
  var lang = body.getAttribute("data-lang") || "es";
  var root = body.getAttribute("data-root") || "";

  // ===== Sidebar toggle (mobile) =====
  var menuToggle = document.getElementById("menu-toggle");
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");

  function toggleSidebar() {
    sidebar.classList.toggle("open");
    overlay.classList.toggle("visible");
  }

  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", toggleSidebar);

  // ===== Part toggle (static pages; live pages post a form) =====
  document.querySelectorAll("button.part-toggle[type=button]").forEach(function(toggle) {
    toggle.addEventListener("click", function() {
      this.parentElement.classList.toggle("expanded");
    });
  });

  // ===== Search =====
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var searchIndex = null;

  fetch(body.getAttribute("data-search-index"))
    .then(function(r) { return r.json(); })
    .then(function(data) { searchIndex = data; })
    .catch(function() { searchIndex = null; });

  function showResults(items) {
    searchResults.innerHTML = "";
    if (items.length === 0) {
      var empty = document.createElement("li");
      empty.textContent = searchResults.getAttribute("data-empty");
      searchResults.appendChild(empty);
      return;
    }
    items.forEach(function(item) {
      var li = document.createElement("li");
      var a = document.createElement("a");
      a.href = root + item.path;
      a.textContent = item.title;
      li.appendChild(a);
      if (item.summary) {
        var s = document.createElement("span");
        s.className = "snippet";
        s.textContent = item.summary;
        li.appendChild(s);
      }
      searchResults.appendChild(li);
    });
  }

  function keywordSearch(query) {
    if (!searchIndex) return [];
    var terms = query.split(/\s+/);
    return searchIndex.filter(function(e) {
      var hay = (e.title + " " + e.section + " " + e.content).toLowerCase();
      return terms.every(function(t) { return hay.indexOf(t) !== -1; });
    }).slice(0, 10);
  }

  function semanticSearch(query) {
    fetch("/api/search", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ query: query, lang: lang, limit: 8 })
    })
      .then(function(r) { return r.json(); })
      .then(function(data) { showResults(data.results || []); })
      .catch(function() { showResults(keywordSearch(query)); });
  }

  if (searchInput) {
    var timer = null;
    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      clearTimeout(timer);
      if (query === "") {
        searchResults.innerHTML = "";
        return;
      }
      if (body.getAttribute("data-semantic") === "1") {
        timer = setTimeout(function() { semanticSearch(query); }, 250);
      } else {
        showResults(keywordSearch(query));
      }
    });
  }

  // ===== Live widgets =====
  if (body.getAttribute("data-live") !== "1") return;
  var figures = document.querySelectorAll("figure.demo");
  if (figures.length === 0 || !window.WebSocket) return;

  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws/widgets");
  var byRef = {};
  var byID = {};

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  function bind(fig, id) {
    fig.querySelectorAll("input[type=range][data-action]").forEach(function(input) {
      input.addEventListener("input", function() {
        send({ type: "action", widget: id, action: input.getAttribute("data-action"), value: parseFloat(input.value) });
      });
    });
    fig.querySelectorAll("button[data-action]").forEach(function(btn) {
      btn.addEventListener("click", function() {
        send({ type: "action", widget: id, action: btn.getAttribute("data-action") });
      });
    });
    fig.querySelectorAll(".demo-choice").forEach(function(group) {
      group.querySelectorAll("button[data-option]").forEach(function(btn) {
        btn.addEventListener("click", function() {
          send({ type: "action", widget: id, action: group.getAttribute("data-action"), option: btn.getAttribute("data-option") });
        });
      });
    });
  }

  ws.addEventListener("open", function() {
    figures.forEach(function(fig, i) {
      var ref = "w" + i;
      byRef[ref] = fig;
      send({ type: "mount", ref: ref, kind: fig.getAttribute("data-widget"), lang: lang });
    });
  });

  ws.addEventListener("message", function(ev) {
    var msg;
    try { msg = JSON.parse(ev.data); } catch (e) { return; }
    if (msg.type === "mounted") {
      var fig = byRef[msg.ref];
      if (!fig) return;
      byID[msg.widget] = fig;
      bind(fig, msg.widget);
    } else if (msg.type === "frame") {
      var target = byID[msg.widget];
      if (target) target.querySelector(".demo-canvas").innerHTML = msg.svg;
    }
  });

  window.addEventListener("beforeunload", function() { ws.close(); });
})();
`

// Asset returns an embedded stylesheet or script by file name.
func Asset(name string) (data, contentType string, ok bool) {
	switch name {
	case styleFile:
		return cssContent, "text/css; charset=utf-8", true
	case scriptFile:
		return jsContent, "application/javascript; charset=utf-8", true
	}
	return "", "", false
}
