package web

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>facecam</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; margin: 1em; }
#feed { max-width: 100%; border: 1px solid #333; }
#status { white-space: pre; }
button { margin-right: .5em; }
</style>
</head>
<body>
<img id="feed" alt="waiting for frames">
<p>
<button onclick="key('g')">toggle grayscale (g)</button>
<button onclick="key('q')">stop (q)</button>
</p>
<div id="status"></div>
<script>
const base = (location.protocol === "https:" ? "wss://" : "ws://") + location.host;
const feed = document.getElementById("feed");
const cam = new WebSocket(base + "/ws/camera");
cam.binaryType = "blob";
cam.onmessage = (e) => {
  const url = URL.createObjectURL(e.data);
  feed.onload = () => URL.revokeObjectURL(url);
  feed.src = url;
};
const st = new WebSocket(base + "/ws/status");
st.onmessage = (e) => {
  document.getElementById("status").textContent = JSON.stringify(JSON.parse(e.data), null, 2);
};
function key(k) { fetch("/api/keys/" + encodeURIComponent(k), { method: "POST" }); }
document.addEventListener("keydown", (e) => { if (e.key.length === 1) key(e.key); });
</script>
</body>
</html>
`
