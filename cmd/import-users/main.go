package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/social-favorites/internal/app"
	"github.com/tair/social-favorites/internal/user"
	"github.com/tair/social-favorites/internal/user/usecase/command"
	"github.com/tair/social-favorites/pkg/config"
	"github.com/tair/social-favorites/pkg/database"
	"github.com/tair/social-favorites/pkg/logger"
)

func main() {
	url := flag.String("url", "", "URL serving a JSON array of {name, email}")
	limit := flag.Int("limit", 0, "maximum number of users to import")
	flag.Parse()

	cfg := config.Load("favorites-import", "")
	logger.Init(logger.Options{
		Service:     cfg.ServiceName,
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
	})

	in := bufio.NewReader(os.Stdin)
	if *url == "" {
		*url = prompt(in, os.Stdout, "Enter the URL to import users from: ")
	}
	if *limit == 0 {
		*limit, _ = strconv.Atoi(prompt(in, os.Stdout, "How many users should be imported? "))
	}

	cmd := command.ImportUsersCommand{URL: *url, Limit: *limit}
	if strings.TrimSpace(cmd.URL) == "" {
		exit(command.ErrURLRequired)
	}
	if cmd.Limit <= 0 {
		exit(command.ErrInvalidLimit)
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		exit(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		exit(err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	if err := app.Migrate(ctx, db); err != nil {
		exit(err)
	}

	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	handler := command.NewImportUsersHandler(user.ProvideUserRepository(db), client)

	n, err := handler.Handle(ctx, cmd)
	if err != nil {
		sqlDB.Close()
		exit(err)
	}
	fmt.Printf("%d Users imported successfully.\n", n)
}

func prompt(in *bufio.Reader, out io.Writer, question string) string {
	fmt.Fprint(out, question)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
