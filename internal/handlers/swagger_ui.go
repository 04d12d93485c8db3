package handlers

import "net/http"

// swaggerPage is the interactive documentation page for the crop dashboard
// API. Static: the operation list comes from /api/docs/openapi.json.
const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Crop Yield Platform API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.17.14/swagger-ui.css">
    <style>
        body { margin: 0; }
        .topbar { display: none; }
        .masthead {
            background: #1b4332;
            color: #fff;
            padding: 12px 24px;
            font-family: sans-serif;
        }
        .masthead small { color: #b7e4c7; }
    </style>
</head>
<body>
    <div class="masthead">
        <strong>Crop Yield Platform</strong>
        <small> &mdash; filterable crop yield analytics over /api/crops</small>
    </div>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.17.14/swagger-ui-bundle.js"></script>
    <script>
        window.onload = () => {
            window.ui = SwaggerUIBundle({
                url: "/api/docs/openapi.json",
                dom_id: "#swagger-ui",
                deepLinking: true,
                filter: true,
                docExpansion: "list",
                tryItOutEnabled: true,
                presets: [SwaggerUIBundle.presets.apis]
            });
        };
    </script>
</body>
</html>`

// SwaggerUI serves the API documentation page
func SwaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(swaggerPage))
}
