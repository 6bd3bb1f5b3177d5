package web

// ServerConfig contains settings for running the inspector HTTP server.
//
// The intended defaults differ per binary:
// - device:    disabled unless an address is configured
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// DisplayURL turns a listen address into a URL a person can open.
// Best-effort for display; don't attempt full URL parsing here.
func DisplayURL(addr string) string {
	if addr == "" {
		return "http://127.0.0.1:8080/"
	}
	if addr[0] == ':' {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + "/"
}
