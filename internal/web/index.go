package web

import (
	"net/http"
)

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>softfb inspector</title>
<style>
body { background: #101820; color: #f2aa4c; font-family: monospace; }
img { image-rendering: pixelated; border: 1px solid #f2aa4c; max-width: 100%; }
</style>
</head>
<body>
<p id="stats">waiting for the first frame</p>
<p><label><input type="checkbox" id="damage"> damage tracking</label></p>
<img id="frame" alt="frame">
<script>
const frame = document.getElementById("frame");
const stats = document.getElementById("stats");
const damage = document.getElementById("damage");
damage.onchange = () => fetch("api/v1/damage", {
  method: "POST",
  headers: {"Content-Type": "application/json"},
  body: JSON.stringify({enabled: damage.checked}),
});
async function tick() {
  try {
    const s = await (await fetch("api/v1/stats")).json();
    stats.textContent = "frame " + s.frame + "  " + s.width + "x" + s.height +
      "  dirty " + s.dirty.width + "x" + s.dirty.height + "+" + s.dirty.x + "+" + s.dirty.y +
      "  presented " + s.totalPresentedPixels + " px";
    damage.checked = s.damageTracking;
    frame.src = "api/v1/frame.png?" + s.frame;
  } catch (e) {
    stats.textContent = "inspector unavailable";
  }
  setTimeout(tick, 500);
}
tick();
</script>
</body>
</html>
`

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
