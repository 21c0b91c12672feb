// Command braynsctl drives a Brayns render server: it plays scene scripts,
// prints the current camera, and serves the control panel API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/Vasu1712/brayns-remote/internal/api/frames"
	"github.com/Vasu1712/brayns-remote/internal/api/presets"
	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/config"
	"github.com/Vasu1712/brayns-remote/internal/middleware"
	"github.com/Vasu1712/brayns-remote/internal/models"
	"github.com/Vasu1712/brayns-remote/internal/relay"
	"github.com/Vasu1712/brayns-remote/internal/scenefile"
	"github.com/Vasu1712/brayns-remote/internal/storage"
	"github.com/Vasu1712/brayns-remote/internal/storage/memory"
	"github.com/Vasu1712/brayns-remote/internal/storage/postgres"
	"github.com/Vasu1712/brayns-remote/internal/storage/valkey"
	"github.com/Vasu1712/brayns-remote/internal/ws"
)

const usage = `usage: braynsctl [-env file] <command> [args]

commands:
  demo               apply the bundled example scene and save its images
  apply <scene.toml> apply a scene script and save the outputs it names
  camera             print the server's camera as a scene script
  endpoints          print the render server endpoints
  serve              run the preset API and live frame relay
`

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	switch args[0] {
	case "demo":
		err = playScene(ctx, cfg, scenefile.Example())
	case "apply":
		if len(args) != 2 {
			flag.Usage()
			os.Exit(2)
		}
		var scene *scenefile.Scene
		if scene, err = scenefile.Load(args[1]); err == nil {
			err = playScene(ctx, cfg, scene)
		}
	case "camera":
		err = printCamera(ctx, cfg)
	case "endpoints":
		printEndpoints(cfg.Client())
	case "serve":
		err = serve(ctx, cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func playScene(ctx context.Context, cfg *config.Config, scene *scenefile.Scene) error {
	client := cfg.Client()
	if err := scene.Apply(ctx, client); err != nil {
		return err
	}
	_, err := scene.Capture(ctx, client, cfg.OutputDir)
	return err
}

func printCamera(ctx context.Context, cfg *config.Config) error {
	client := cfg.Client()
	camera := models.NewCamera()
	if err := client.GetFovCamera(brayns.ReportConnectionFailures(ctx), camera); err != nil {
		return err
	}
	data, err := (&scenefile.Scene{Camera: scenefile.CameraFromModel(camera)}).Marshal()
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	return nil
}

func printEndpoints(client *brayns.Client) {
	eps := client.Endpoints()
	names := make([]string, 0, len(eps))
	for name := range eps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-18s %s\n", name, eps[name])
	}
}

func openPresetStore(cfg *config.Config) (storage.PresetStore, error) {
	switch cfg.PresetStore {
	case config.BackendValkey:
		return valkey.NewPresetStore(cfg.ValkeyAddr)
	case config.BackendPostgres:
		return postgres.NewPresetStore(cfg.DatabaseURL)
	}
	return memory.NewPresetStore(), nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := openPresetStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client := cfg.Client()
	hub := ws.NewHub()
	go hub.Run(ctx)
	fr := &relay.Relay{Source: client, Hub: hub, Stream: frames.DefaultStream, Interval: cfg.FrameInterval}
	go fr.Run(ctx)

	r := mux.NewRouter()
	r.Use(middleware.Logging("Server"))
	presets.RegisterPresetRoutes(r, &presets.PresetHandler{Store: store, Client: client})
	frames.RegisterFrameRoutes(r, frames.NewFrameHandler(hub, cfg.CORSOrigin))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           middleware.CORS(cfg.CORSOrigin)(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server started at %s (render server %s, %s profile, %s presets)",
		cfg.ListenAddr, client.URL(), client.Profile(), cfg.PresetStore)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
