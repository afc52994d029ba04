package web

var indexHTML = []byte(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>openpages</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #222; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
li { margin: 0.4rem 0; }
</style>
</head>
<body>
<h1>openpages</h1>
<p>Local paper corpus API. Endpoints:</p>
<ul>
<li><code>GET /api/status</code></li>
<li><code>GET /api/papers?q=&amp;category=&amp;status=&amp;sort=</code></li>
<li><code>GET /api/papers/{slug}</code></li>
<li><code>GET /api/categories</code></li>
<li><code>GET /api/errors</code></li>
</ul>
</body>
</html>
`)
