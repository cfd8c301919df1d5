package blog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	"github.com/google/uuid"
)

// RegisterBlogRoutes mounts the rendered blog surface: home and search plus
// the post and comment routes. Mutating routes go through RequireAuth; the
// ownership checks happen in the handlers because they need the record.
func RegisterBlogRoutes[T any](app router.Router[T], opts ...BlogControllerOption) {
	controller := NewBlogController(opts...)
	requireAuth := controller.Auther.RequireAuth()

	app.Get("/", controller.Home).SetName("home.get")
	app.Get("/search", controller.Search).SetName("search.get")

	app.Get("/blog/add-new", controller.AddNewShow, requireAuth).SetName("blog-new.get")
	app.Post("/blog", controller.Create, requireAuth).SetName("blog.post")
	app.Get("/blog/:id", controller.Show).SetName("blog.get")
	app.Get("/blog/edit/:id", controller.EditShow, requireAuth).SetName("blog-edit.get")
	app.Post("/blog/edit/:id", controller.Update, requireAuth).SetName("blog-edit.post")
	app.Post("/blog/delete/:id", controller.Delete, requireAuth).SetName("blog-delete.post")

	app.Post("/blog/comment/:blogId", controller.CommentCreate, requireAuth).SetName("comment.post")
	app.Post("/blog/comment/delete/:commentId", controller.CommentDelete, requireAuth).SetName("comment-delete.post")
}

type BlogControllerViews struct {
	Home   string
	Search string
	Show   string
	AddNew string
	Edit   string
}

type BlogController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Auther       *RouteAuthenticator
	Uploads      *CoverImageStore
	Views        *BlogControllerViews
	ErrorHandler router.ErrorHandler
}

type BlogControllerOption func(*BlogController) *BlogController

func WithBlogRepository(repo RepositoryManager) BlogControllerOption {
	return func(c *BlogController) *BlogController {
		c.Repo = repo
		return c
	}
}

func WithBlogRouteAuthenticator(auther *RouteAuthenticator) BlogControllerOption {
	return func(c *BlogController) *BlogController {
		c.Auther = auther
		return c
	}
}

func WithBlogUploads(store *CoverImageStore) BlogControllerOption {
	return func(c *BlogController) *BlogController {
		c.Uploads = store
		return c
	}
}

func WithBlogLogger(logger Logger) BlogControllerOption {
	return func(c *BlogController) *BlogController {
		c.Logger = logger
		return c
	}
}

func NewBlogController(opts ...BlogControllerOption) *BlogController {
	c := &BlogController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Views: &BlogControllerViews{
			Home:   "home",
			Search: "search_results",
			Show:   "blog",
			AddNew: "add_blog",
			Edit:   "edit_blog",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in blog controller...")
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in blog controller...")
	}

	return c
}

func (a *BlogController) Home(ctx router.Context) error {
	blogs, err := a.Repo.Blogs().ListRecent(ctx.Context())
	if err != nil {
		a.Logger.Error("home list blogs: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.Render(a.Views.Home, MergeTemplateData(ctx, router.ViewContext{
		"blogs": blogs,
	}))
}

func (a *BlogController) Search(ctx router.Context) error {
	query := ctx.Query("query", "")
	if query == "" {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	blogs, err := a.Repo.Blogs().SearchByTitle(ctx.Context(), query)
	if err != nil {
		a.Logger.Error("search blogs: ", "error", err)
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	return ctx.Render(a.Views.Search, MergeTemplateData(ctx, router.ViewContext{
		"blogs": blogs,
		"query": query,
	}))
}

func (a *BlogController) Show(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Param("id", ""))
	if err != nil {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	record, err := a.Repo.Blogs().GetWithAuthor(ctx.Context(), id)
	if err != nil {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	comments, err := a.Repo.Comments().ListForBlog(ctx.Context(), record.ID)
	if err != nil {
		a.Logger.Error("show blog list comments: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	session, _ := RouterSession(ctx, a.Auther.SessionKey())

	return ctx.Render(a.Views.Show, MergeTemplateData(ctx, router.ViewContext{
		"blog":       record,
		"comments":   comments,
		"can_manage": CanManageBlog(record, session),
	}))
}

func (a *BlogController) AddNewShow(ctx router.Context) error {
	return ctx.Render(a.Views.AddNew, MergeTemplateData(ctx, router.ViewContext{
		"errors": map[string]string{},
		"record": nil,
	}))
}

// BlogCreatePayload is the add/edit form payload. The cover image travels as
// a multipart file, not as a form field.
type BlogCreatePayload struct {
	Title string `form:"title" json:"title"`
	Body  string `form:"body" json:"body"`
}

// Validate will validate the payload
func (r BlogCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Body, validation.Required),
	)
}

func (a *BlogController) Create(ctx router.Context) error {
	session, ok := RouterSession(ctx, a.Auther.SessionKey())
	if !ok {
		return ctx.Redirect(a.Auther.cfg.GetSigninRoute(), router.StatusSeeOther)
	}

	payload := new(BlogCreatePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("create blog parse payload: ", "error", err)
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.AddNew, MergeTemplateData(ctx, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		}))
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	coverURL := DefaultCoverImageURL
	if a.Uploads != nil {
		if url, err := a.Uploads.SaveFromRequest(ctx, "cover_image"); err != nil {
			return ctx.Render(a.Views.AddNew, MergeTemplateData(ctx, router.ViewContext{
				"record": payload,
				"errors": map[string]string{"cover_image": err.Error()},
			}))
		} else if url != "" {
			coverURL = url
		}
	}

	ownerID, err := session.GetUserUUID()
	if err != nil {
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	record := &Blog{
		ID:            uuid.New(),
		Title:         payload.Title,
		Body:          payload.Body,
		CoverImageURL: coverURL,
		CreatedBy:     ownerID,
	}

	if _, err := a.Repo.Blogs().Create(ctx.Context(), record); err != nil {
		a.Logger.Error("create blog: ", "error", err)
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	return ctx.Redirect("/blog/"+record.ID.String(), router.StatusSeeOther)
}

func (a *BlogController) EditShow(ctx router.Context) error {
	record, _, ok := a.ownedBlog(ctx)
	if !ok {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	return ctx.Render(a.Views.Edit, MergeTemplateData(ctx, router.ViewContext{
		"blog":   record,
		"errors": map[string]string{},
	}))
}

func (a *BlogController) Update(ctx router.Context) error {
	record, _, ok := a.ownedBlog(ctx)
	if !ok {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	payload := new(BlogCreatePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("update blog parse payload: ", "error", err)
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Edit, MergeTemplateData(ctx, router.ViewContext{
			"blog":       record,
			"validation": FormatValidationErrorToMap(err),
		}))
	}

	record.Title = payload.Title
	record.Body = payload.Body

	if a.Uploads != nil {
		if url, err := a.Uploads.SaveFromRequest(ctx, "cover_image"); err != nil {
			return ctx.Render(a.Views.Edit, MergeTemplateData(ctx, router.ViewContext{
				"blog":   record,
				"errors": map[string]string{"cover_image": err.Error()},
			}))
		} else if url != "" {
			a.Uploads.Remove(record.CoverImageURL)
			record.CoverImageURL = url
		}
	}

	if _, err := a.Repo.Blogs().Update(ctx.Context(), record); err != nil {
		a.Logger.Error("update blog: ", "error", err)
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	return ctx.Redirect("/blog/"+record.ID.String(), router.StatusSeeOther)
}

func (a *BlogController) Delete(ctx router.Context) error {
	record, _, ok := a.ownedBlog(ctx)
	if !ok {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	if err := a.Repo.Blogs().DeleteCascade(ctx.Context(), record.ID); err != nil {
		a.Logger.Error("delete blog: ", "error", err)
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	if a.Uploads != nil {
		a.Uploads.Remove(record.CoverImageURL)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Post deleted",
	}).Redirect("/", fiber.StatusSeeOther)
}

// CommentCreatePayload is the comment form payload
type CommentCreatePayload struct {
	Content string `form:"content" json:"content"`
}

// Validate will validate the payload
func (r CommentCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 2000)),
	)
}

func (a *BlogController) CommentCreate(ctx router.Context) error {
	session, ok := RouterSession(ctx, a.Auther.SessionKey())
	if !ok {
		return ctx.Redirect(a.Auther.cfg.GetSigninRoute(), router.StatusSeeOther)
	}

	blogID, err := uuid.Parse(ctx.Param("blogId", ""))
	if err != nil {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	payload := new(CommentCreatePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("create comment parse payload: ", "error", err)
		return ctx.Redirect("/blog/"+blogID.String(), router.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Redirect("/blog/"+blogID.String(), router.StatusSeeOther)
	}

	ownerID, err := session.GetUserUUID()
	if err != nil {
		return ctx.Redirect("/", router.StatusSeeOther)
	}

	record := &Comment{
		ID:        uuid.New(),
		Content:   payload.Content,
		BlogID:    blogID,
		CreatedBy: ownerID,
	}

	if _, err := a.Repo.Comments().Create(ctx.Context(), record); err != nil {
		a.Logger.Error("create comment: ", "error", err)
	}

	return ctx.Redirect("/blog/"+blogID.String(), router.StatusSeeOther)
}

func (a *BlogController) CommentDelete(ctx router.Context) error {
	session, ok := RouterSession(ctx, a.Auther.SessionKey())
	if !ok {
		return ctx.Redirect(a.Auther.cfg.GetSigninRoute(), router.StatusSeeOther)
	}

	commentID, err := uuid.Parse(ctx.Param("commentId", ""))
	if err != nil {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	comment, err := a.Repo.Comments().GetByID(ctx.Context(), commentID.String())
	if err != nil {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	parent, err := a.Repo.Blogs().GetByID(ctx.Context(), comment.BlogID.String())
	if err != nil {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	if !CanDeleteComment(comment, parent, session) {
		return ctx.Redirect("/", router.StatusTemporaryRedirect)
	}

	if err := a.Repo.Comments().DeleteOne(ctx.Context(), comment.ID); err != nil {
		a.Logger.Error("delete comment: ", "error", err)
	}

	return ctx.Redirect("/blog/"+parent.ID.String(), router.StatusSeeOther)
}

// ownedBlog loads the blog named by the :id param and checks ownership
// against the current session. Missing records and failed checks both come
// back not-ok; callers redirect without revealing which case it was.
func (a *BlogController) ownedBlog(ctx router.Context) (*Blog, Session, bool) {
	session, ok := RouterSession(ctx, a.Auther.SessionKey())
	if !ok {
		return nil, nil, false
	}

	id, err := uuid.Parse(ctx.Param("id", ""))
	if err != nil {
		return nil, session, false
	}

	record, err := a.Repo.Blogs().GetByID(ctx.Context(), id.String())
	if err != nil {
		return nil, session, false
	}

	if !CanManageBlog(record, session) {
		return nil, session, false
	}

	return record, session, true
}
