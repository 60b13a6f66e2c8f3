// Example walkthrough for the settings resolver.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"settings"
)

type ServerSettings struct {
	Host    string        `json:"host"`
	Port    int           `json:"port"`
	Timeout time.Duration `json:"timeout"`
}

func main() {
	root, err := os.MkdirTemp("", "settings-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(root)

	// Tier directory beats the base directory for the same key.
	base := filepath.Join(root, "settings")
	prod := filepath.Join(base, "Production")
	if err := os.MkdirAll(prod, 0755); err != nil {
		log.Fatal(err)
	}
	os.WriteFile(filepath.Join(base, "ServerSettings.json"),
		[]byte(`{"host":"localhost","port":8080,"timeout":"5s"}`), 0644)
	os.WriteFile(filepath.Join(prod, "ServerSettings.json"),
		[]byte(`{"host":"prod.example.com","port":443,"timeout":"30s"}`), 0644)

	r := settings.NewBuilder().
		WithRoot(root).
		WithPrecedence("Production").
		MustBuild()

	cfg, err := settings.Get[ServerSettings](r)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("host=%s port=%d timeout=%s\n", cfg.Host, cfg.Port, cfg.Timeout)

	// Second call is served from the cache.
	again, _ := settings.Get[ServerSettings](r)
	fmt.Println("cached:", again == cfg)

	// Explicit override wins until Reset.
	settings.Set(r, ServerSettings{Host: "override", Port: 1})
	over, _ := settings.Get[ServerSettings](r)
	fmt.Println("override:", over.Host)

	r.Reset(settings.ResetRoot(root))
	fresh, _ := settings.Get[ServerSettings](r)
	fmt.Println("after reset:", fresh.Host)
}
