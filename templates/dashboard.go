package templates

import (
	"fmt"
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"portfolio/constants"
	"portfolio/database"
	"portfolio/deadletter"
)

func SignInPage(props LayoutProps, email, errMsg string) g.Node {
	return Layout(props,
		H1(g.Text("Admin sign in")),
		g.If(errMsg != "", Banner("error", errMsg)),
		Form(Class("stacked"), Method("post"), Action("/signin"),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Value(email), Required()),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			P(Button(Type("submit"), Class("button"), g.Text("Sign in"))),
		),
	)
}

// PolicyBanner explains how to lift a row-level security block.
func PolicyBanner() g.Node {
	return Div(Class("banner banner-error"),
		Strong(g.Text("The database refused the change (row-level security).")),
		P(g.Text("Run this in the SQL editor of the database to allow writes:")),
		Pre(Code(g.Text(constants.RLS_REMEDIATION_SQL))),
	)
}

type DashboardProps struct {
	Posts           []database.Post
	Offline         bool
	PolicyBlocked   bool
	Flash           string
	Translating     bool
	DeadLetters     []deadletter.Entry
	DeadLetterCount int
}

func DashboardPage(props LayoutProps, d DashboardProps) g.Node {
	rows := make([]g.Node, 0, len(d.Posts))
	for _, p := range d.Posts {
		rows = append(rows, dashboardRow(p, d.Offline))
	}

	return Layout(props,
		Div(Class("row"),
			H1(g.Text("Dashboard")),
			g.If(!d.Offline, A(Class("button"), Href("/dashboard/post/new"), g.Text("New post"))),
		),
		g.If(d.Offline, Banner("warn", "Database unreachable. Showing sample posts, read only.")),
		g.If(d.PolicyBlocked, PolicyBanner()),
		g.If(d.Flash != "", Banner("info", d.Flash)),
		g.If(!d.Translating, P(Class("meta"), g.Text("Automatic translation is off (no AI key configured)."))),
		Table(
			THead(Tr(Th(g.Text("ID")), Th(g.Text("Title")), Th(g.Text("Category")), Th(g.Text("Date")), Th(g.Text("বাংলা")), Th())),
			TBody(g.Group(rows)),
		),
		g.If(d.DeadLetterCount > 0, deadLetterSection(d)),
	)
}

func dashboardRow(p database.Post, readOnly bool) g.Node {
	id := strconv.FormatInt(p.ID, 10)
	translated := "–"
	if p.TitleAlt != "" && p.BodyAlt != "" {
		translated = "✓"
	}

	return Tr(
		Td(g.Text(id)),
		Td(A(Href("/post/"+id), g.Text(p.Title))),
		Td(g.Text(p.Category)),
		Td(g.Text(p.PublishedDate)),
		Td(g.Text(translated)),
		Td(g.If(!readOnly, Div(Class("row"),
			A(Href("/dashboard/post/"+id), g.Text("Edit")),
			A(Href("/dashboard/post/"+id+"/delete"), g.Text("Delete")),
		))),
	)
}

func deadLetterSection(d DashboardProps) g.Node {
	items := make([]g.Node, 0, len(d.DeadLetters))
	for _, e := range d.DeadLetters {
		items = append(items, Li(
			g.Textf("post %d: %s ", e.PostID, e.Reason),
			Small(Class("meta"), g.Text(e.FailedAt.Format(constants.DATE_LAYOUT+" 15:04"))),
		))
	}

	return Section(
		H3(g.Textf("Unsaved translations (%d)", d.DeadLetterCount)),
		P(Class("meta"), g.Text("These translations are shown on the site but could not be written back to the database.")),
		Ul(g.Group(items)),
	)
}

type PostFormProps struct {
	Post          database.Post
	Error         string
	PolicyBlocked bool
}

func PostFormPage(props LayoutProps, f PostFormProps) g.Node {
	action := "/dashboard/post/new"
	heading := "New post"
	if f.Post.ID != 0 {
		action = fmt.Sprintf("/dashboard/post/%d", f.Post.ID)
		heading = "Edit post"
	}

	return Layout(props,
		A(Href("/dashboard"), g.Text("← Dashboard")),
		H1(g.Text(heading)),
		g.If(f.PolicyBlocked, PolicyBanner()),
		g.If(f.Error != "", Banner("error", f.Error)),
		Form(Class("stacked"), Method("post"), Action(action), g.Attr("enctype", "multipart/form-data"),
			Label(For("title"), g.Text("Title")),
			Input(Type("text"), ID("title"), Name("title"), Value(f.Post.Title), Required()),
			Label(For("category"), g.Text("Category")),
			Input(Type("text"), ID("category"), Name("category"), Value(f.Post.Category), Placeholder(constants.DEFAULT_CATEGORY)),
			Label(For("excerpt"), g.Text("Body (Markdown)")),
			Textarea(ID("excerpt"), Name("excerpt"), g.Attr("rows", "14"), Required(), g.Text(f.Post.Body)),
			Label(For("image_url"), g.Text("Image URL")),
			Input(Type("text"), ID("image_url"), Name("image_url"), Value(f.Post.ImageURL)),
			Label(For("image"), g.Text("Or upload an image")),
			Input(Type("file"), ID("image"), Name("image"), g.Attr("accept", "image/*")),
			P(Button(Type("submit"), Class("button"), g.Text("Save"))),
		),
	)
}

func DeleteConfirmPage(props LayoutProps, p database.Post) g.Node {
	return Layout(props,
		H1(g.Text("Delete post")),
		P(g.Textf("Delete %q permanently?", p.Title)),
		Form(Method("post"), Action(fmt.Sprintf("/dashboard/post/%d/delete", p.ID)),
			Div(Class("row"),
				Button(Type("submit"), Class("button danger"), g.Text("Delete")),
				A(Href("/dashboard"), g.Text("Cancel")),
			),
		),
	)
}
