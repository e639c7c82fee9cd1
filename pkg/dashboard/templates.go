package dashboard

import "html/template"

var statusPage = template.Must(template.New("status").Parse(statusPageHTML))

const statusPageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>AI Behar Platform</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0; padding: 20px;
            background: linear-gradient(135deg, #1e3c72 0%, #2a5298 100%);
            color: white; min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        .header { text-align: center; margin-bottom: 40px; }
        .header h1 { font-size: 3em; margin: 0; text-shadow: 2px 2px 4px rgba(0,0,0,0.3); }
        .header p { font-size: 1.2em; opacity: 0.9; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 20px; }
        .card {
            background: rgba(255,255,255,0.1);
            padding: 20px; border-radius: 10px;
            backdrop-filter: blur(10px);
            border: 1px solid rgba(255,255,255,0.2);
        }
        .card h3 { margin-top: 0; color: #4CAF50; }
        .status {
            display: inline-block;
            padding: 4px 12px;
            border-radius: 20px;
            font-size: 0.9em;
            font-weight: bold;
        }
        .status.active { background: #4CAF50; color: white; }
        .status.healthy { background: #2196F3; color: white; }
        .endpoint {
            background: rgba(0,0,0,0.2);
            padding: 10px;
            margin: 5px 0;
            border-radius: 5px;
            border-left: 3px solid #4CAF50;
        }
        .endpoint a { color: #81C784; text-decoration: none; }
        .endpoint a:hover { text-decoration: underline; }
        .metric {
            display: flex;
            justify-content: space-between;
            margin: 10px 0;
            padding: 8px;
            background: rgba(0,0,0,0.1);
            border-radius: 5px;
        }
        .chat-button {
            background: linear-gradient(45deg, #4CAF50, #45a049);
            color: white;
            padding: 15px 30px;
            font-size: 1.2em;
            border: none;
            border-radius: 25px;
            cursor: pointer;
            text-decoration: none;
            display: inline-block;
            margin: 10px;
            box-shadow: 0 4px 15px rgba(0,0,0,0.2);
            transition: transform 0.2s;
        }
        .chat-button:hover {
            transform: translateY(-2px);
            box-shadow: 0 6px 20px rgba(0,0,0,0.3);
        }
        .refresh {
            position: fixed;
            top: 20px;
            right: 20px;
            background: #4CAF50;
            color: white;
            border: none;
            padding: 10px 20px;
            border-radius: 5px;
            cursor: pointer;
        }
    </style>
</head>
<body>
    <button class="refresh" onclick="location.reload()">🔄 Refresh</button>

    <div class="container">
        <div class="header">
            <h1>🚀 AI Behar Platform</h1>
            <p>Advanced AI Platform with Consciousness Integration &amp; LLM Chat</p>
            <span class="status active">{{.StatusTitle}}</span>
            <span class="status healthy">Healthy</span>
            {{if .FrontendAvailable}}<br><br><a href="/chat" class="chat-button">💬 Start Chatting with LLMs</a>
            <a href="/ui" class="chat-button">🎨 OpenWebUI Interface</a>{{end}}
        </div>

        <div class="grid">
            <div class="card">
                <h3>📊 Platform Status</h3>
                <div class="metric">
                    <span>Status:</span>
                    <span>{{.StatusTitle}}</span>
                </div>
                <div class="metric">
                    <span>Uptime:</span>
                    <span>{{printf "%.1fs" .Uptime}}</span>
                </div>
                <div class="metric">
                    <span>Components:</span>
                    <span>{{.ComponentCount}}</span>
                </div>
                <div class="metric">
                    <span>LLM Models:</span>
                    <span>{{.ModelCount}}</span>
                </div>
            </div>

            <div class="card">
                <h3>💬 Chat &amp; LLM</h3>
                {{if .FrontendAvailable}}<div class="endpoint">💬 <a href="/chat">Start Chat Session</a></div>
                <div class="endpoint">🎨 <a href="/ui">OpenWebUI Interface</a></div>
                {{else}}<p>Frontend not reachable</p>
                {{end}}<div class="endpoint">🤖 <a href="/api/models">Available Models</a></div>
                <div class="endpoint">📡 <a href="/api/models/available">Model Details</a></div>
            </div>

            <div class="card">
                <h3>🌐 API Endpoints</h3>
                <div class="endpoint">🏥 <a href="/health">Health Check</a></div>
                <div class="endpoint">📊 <a href="/status">System Status</a></div>
                <div class="endpoint">🧠 <a href="/consciousness/state">Consciousness</a></div>
                <div class="endpoint">🤖 <a href="/agents">Agents</a></div>
                <div class="endpoint">💾 <a href="/memory/stats">Memory</a></div>
                <div class="endpoint">📈 <a href="/trading/status">Trading</a></div>
                <div class="endpoint">📉 <a href="/metrics">Metrics</a></div>
            </div>

            <div class="card">
                <h3>🔗 Integrations</h3>
                <div class="metric">
                    <span>OpenWebUI:</span>
                    <span>{{if .FrontendAvailable}}✅ Available{{else}}❌ Not Found{{end}}</span>
                </div>
                <div class="metric">
                    <span>LLM Models:</span>
                    <span>{{if .ModelCount}}✅ {{.ModelCount}} Available{{else}}❌ None{{end}}</span>
                </div>
                <div class="metric">
                    <span>Ollama:</span>
                    <span>{{if eq .OllamaState "connected"}}✅ Connected{{else}}⚠️ {{.OllamaTitle}}{{end}}</span>
                </div>
                <div class="metric">
                    <span>Trading:</span>
                    <span>{{if .TradingEnabled}}✅ Enabled{{else}}⚠️ Simulation{{end}}</span>
                </div>
            </div>
        </div>
    </div>

    <script>
        // Auto-refresh every 30 seconds
        setTimeout(function() {
            location.reload();
        }, 30000);
    </script>
</body>
</html>
`

var chatRedirectPage = template.Must(template.New("chat_redirect").Parse(chatRedirectHTML))

const chatRedirectHTML = `<html>
<head>
    <title>Redirecting to Chat...</title>
    <meta http-equiv="refresh" content="0;url={{.Target}}">
</head>
<body>
    <p>Redirecting to OpenWebUI Chat...</p>
    <p>If you are not redirected, <a href="{{.Target}}">click here</a>.</p>
</body>
</html>
`
