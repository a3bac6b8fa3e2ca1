package server

import "html/template"

type pageData struct {
	Path string
	Time string
}

// pageTemplate is the response body for every GET. Path and Time are
// contextually escaped on substitution.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Simple HTTP Server</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 800px;
            margin: 50px auto;
            padding: 20px;
            background-color: #f0f0f0;
        }
        .container {
            background-color: white;
            padding: 30px;
            border-radius: 10px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        h1 { color: #333; }
        .info { color: #666; margin-top: 20px; }
        .emoji { font-size: 3em; }
    </style>
</head>
<body>
    <div class="container">
        <div class="emoji">👋</div>
        <h1>Hello from Simple HTTP Server!</h1>
        <p>This is a basic Go HTTP server.</p>
        <div class="info">
            <p><strong>Path:</strong> {{.Path}}</p>
            <p><strong>Time:</strong> {{.Time}}</p>
        </div>
    </div>
</body>
</html>
`))
