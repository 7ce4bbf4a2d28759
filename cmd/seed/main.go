package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"frontline/internal/config"
	"frontline/internal/database"
	"frontline/internal/modules/form"
	"frontline/internal/pkg/logger"
	"frontline/internal/pkg/qrcode"
	"frontline/internal/repository"
)

var (
	mills  = []string{"Sunrise Dyeing", "Blue River Process House", "Coastal Textiles", ""}
	counts = []string{"20s", "30s", "40s", "60s"}
	weaves = []string{"Poplin", "Twill", "Oxford", "Cambric", "Voile"}
)

func main() {
	n := flag.Int("n", 35, "number of demo forms to insert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	ctx := context.Background()
	conn := database.New(cfg.DatabaseName, lg)
	if err := conn.Connect(ctx, cfg.DatabaseURI); err != nil {
		lg.Fatal("database connect failed", "error", err)
	}
	defer conn.Close(ctx)

	store, err := repository.NewFormStore(conn)
	if err != nil {
		lg.Fatal("form store init failed", "error", err)
	}
	svc := form.NewService(store, qrcode.New(cfg.QRScale), cfg.FrontendURL)

	lg.Info("seeding forms", "count", *n, "backend", conn.Backend())
	for i := 0; i < *n; i++ {
		req := form.CreateFormRequest{
			AreticalNo:    form.Text(fmt.Sprintf("AR-%04d", 1000+i)),
			Name:          form.Text(fmt.Sprintf("%s %d", weaves[rand.Intn(len(weaves))], i+1)),
			Date:          form.Text(fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1)),
			WarpDetails:   form.Details{detail("ends", 100+rand.Intn(60))},
			WeftDetails:   form.Details{detail("picks", 60+rand.Intn(40))},
			DyingMillName: form.Text(mills[i%len(mills)]),
		}
		f, err := svc.Create(ctx, req)
		if err != nil {
			lg.Fatal("seed form failed", "index", i, "error", err)
		}
		lg.Debug("form created", "id", f.ID, "name", f.Name)
	}
	lg.Info("seeding completed", "count", *n)
}

func detail(key string, value int) map[string]any {
	return map[string]any{
		"count": counts[rand.Intn(len(counts))],
		key:     value,
	}
}
