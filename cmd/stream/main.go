package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"pixelkernels"
	"pixelkernels/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	tick := flag.Duration("tick", 50*time.Millisecond, "Water broadcast interval")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Workers: *workers})

	k := pixelkernels.New()
	k.Workers = cfg.Workers
	k.Wave = pixelkernels.WaveParams{WaveSpeed: cfg.Water.WaveSpeed, Damping: cfg.Water.Damping}

	srv := newServer(k, cfg)
	go srv.waterLoop(*tick)

	http.HandleFunc("/ws", srv.handleWebSocket)
	http.HandleFunc("/", serveHome)

	log.Printf("Server starting on http://localhost%s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func serveHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, homePage)
}

const homePage = `<!doctype html>
<title>pixelkernels</title>
<img id="frame">
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "blob";
ws.onopen = () => ws.send(JSON.stringify({kernel: "fractal", width: 640, height: 480}));
ws.onmessage = (e) => {
  if (typeof e.data === "string") { console.log(e.data); return; }
  const img = document.getElementById("frame");
  URL.revokeObjectURL(img.src);
  img.src = URL.createObjectURL(e.data);
};
</script>
`
