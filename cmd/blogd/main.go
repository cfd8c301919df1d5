package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	django "github.com/gofiber/template/django/v3"
	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/config"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config  *gconfig.Container[*config.BaseConfig]
	bunDB   *bun.DB
	auth    blog.Authenticator
	auther  *blog.RouteAuthenticator
	repo    blog.RepositoryManager
	uploads *blog.CoverImageStore
	srv     router.Server[*fiber.App]
	logger  *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("blog"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if app.Config().GetApp().GetDebug() {
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	if err := WithAuth(ctx, app); err != nil {
		panic(err)
	}

	if err := WithBlogRoutes(ctx, app); err != nil {
		panic(err)
	}

	app.srv.Serve(app.Config().GetServer().GetAddr())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	pcfg := app.Config().GetPersistence()

	db, err := sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
	if err != nil {
		return err
	}

	persistence.RegisterModel((*blog.User)(nil))
	persistence.RegisterModel((*blog.Blog)(nil))
	persistence.RegisterModel((*blog.Comment)(nil))

	client, err := persistence.New(pcfg, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(blog.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = blog.NewRepositoryManager(client.DB())

	return app.repo.Validate()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	vcfg := app.Config().GetViews()

	engine := django.New(vcfg.GetDir(), vcfg.GetExt())
	engine.Reload(vcfg.GetReload())
	engine.AddFuncMap(blog.TemplateHelpers())

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))
	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	srv.Router().Static("/", app.Config().GetViews().GetAssets())

	app.srv = srv

	return nil
}

func WithAuth(ctx context.Context, app *App) error {
	acfg := app.Config().GetAuth()

	userProvider := blog.NewUserProvider(app.repo.Users()).
		WithLogger(app.GetLogger("auth:prv"))

	authenticator := blog.NewAuthenticator(userProvider, acfg).
		WithLogger(app.GetLogger("auth:authn"))

	app.auth = authenticator

	httpAuth, err := blog.NewHTTPAuthenticator(authenticator, acfg)
	if err != nil {
		return err
	}
	httpAuth.Logger = app.GetLogger("auth:http")

	app.auther = httpAuth

	// every request resolves its session before routing. Invalid cookies
	// degrade to anonymous, they never 500 a page render.
	app.srv.Router().Use(httpAuth.WithSession())

	blog.RegisterAuthRoutes(app.srv.Router(),
		blog.WithAuthRepository(app.repo),
		blog.WithAuthRouteAuthenticator(httpAuth),
		blog.WithAuthLogger(app.GetLogger("auth:ctrl")),
	)

	return nil
}

func WithBlogRoutes(ctx context.Context, app *App) error {
	ucfg := app.Config().GetUploads()

	uploads, err := blog.NewCoverImageStore(
		ucfg.GetDir(),
		ucfg.GetPublicPrefix(),
		blog.WithUploadsLogger(app.GetLogger("uploads")),
	)
	if err != nil {
		return err
	}

	app.uploads = uploads

	blog.RegisterBlogRoutes(app.srv.Router(),
		blog.WithBlogRepository(app.repo),
		blog.WithBlogRouteAuthenticator(app.auther),
		blog.WithBlogUploads(uploads),
		blog.WithBlogLogger(app.GetLogger("blog:ctrl")),
	)

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
