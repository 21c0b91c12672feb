// Command fakebrayns runs an in-process stand-in for a Brayns render server,
// for trying braynsctl without a GPU.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/Vasu1712/brayns-remote/internal/fakeserver"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	quiet := flag.Bool("quiet", false, "do not log requests")
	flag.Parse()

	var opts []fakeserver.Option
	if *quiet {
		opts = append(opts, fakeserver.Quiet())
	}
	if secret := os.Getenv("BRAYNS_JWT_SECRET"); secret != "" {
		opts = append(opts, fakeserver.WithJWTSecret([]byte(secret)))
	}

	srv := fakeserver.New(opts...)
	log.Printf("Fake render server started at %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, srv.Handler()))
}
