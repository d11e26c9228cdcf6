package templates

import (
	"bytes"
	"strconv"
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"portfolio/constants"
)

// teaser width in terminal cells; Bengali and wide glyphs count double
const teaserWidth = 180

// PostView is a post as it is shown to visitors, already in the visitor's
// language.
type PostView struct {
	ID          int64
	Title       string
	Body        string
	Category    string
	Date        string
	ImageURL    string
	Translating bool
}

func (p PostView) href() string {
	return "/post/" + strconv.FormatInt(p.ID, 10)
}

// ListProps feed the home page and the archive.
type ListProps struct {
	Posts   []PostView
	Loading bool
	// Notice explains why sample posts are shown, if they are.
	Notice string
	Query  string
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Markdown renders a post body. Raw HTML in the source is dropped.
func Markdown(src string) g.Node {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return P(g.Text(src))
	}
	return g.Raw(buf.String())
}

// Teaser flattens s to one line and cuts it to width display cells.
func Teaser(s string, width int) string {
	flat := strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(flat, width, "…")
}

func PostCard(props LayoutProps, p PostView) g.Node {
	s := props.strings()

	return Article(Class("card"),
		g.If(p.ImageURL != "", A(Href(p.href()), Img(Src(p.ImageURL), Alt(p.Title)))),
		Div(Class("card-body"),
			Div(Class("meta"),
				Span(Class("badge"), g.Text(p.Category)),
				g.Text(p.Date),
				g.If(p.Translating, Span(Class("badge warn"), g.Text(s.Translating))),
			),
			H3(A(Href(p.href()), g.Text(p.Title))),
			P(g.Text(Teaser(p.Body, teaserWidth))),
			A(Href(p.href()), g.Text(s.ReadStory+" →")),
		),
	)
}

func postGrid(props LayoutProps, list ListProps) g.Node {
	s := props.strings()

	if len(list.Posts) == 0 {
		if list.Loading {
			return P(Class("meta"), g.Text(s.ChatThinking))
		}
		if list.Query != "" {
			return P(Class("meta"), g.Text(s.NoResults))
		}
		return Div(Class("banner"),
			H3(g.Text(s.NoContent)),
			P(Class("meta"), g.Text(s.NoContentSub)),
		)
	}

	cards := make([]g.Node, 0, len(list.Posts))
	for _, p := range list.Posts {
		cards = append(cards, PostCard(props, p))
	}
	return Div(Class("grid"), g.Group(cards))
}

func HomePage(props LayoutProps, list ListProps) g.Node {
	s := props.strings()

	return Layout(props,
		Section(Class("hero"), ID("profile"),
			Span(Class("badge"), g.Text(s.ExpertBadge)),
			H1(g.Text(constants.OWNER_NAME)),
			H3(g.Text(s.HeroRole)),
			P(Class("meta"), g.Text(s.HeroDescription)),
		),
		ServicesSection(props),
		ExperienceSection(props),
		Section(ID("insights"),
			H2(g.Text(s.LatestInsights)),
			g.If(list.Notice != "", Banner("warn", list.Notice)),
			postGrid(props, list),
			P(A(Class("button"), Href("/blog"), g.Text(s.ViewAll))),
		),
		ContactSection(props),
	)
}

func ArchivePage(props LayoutProps, list ListProps) g.Node {
	s := props.strings()

	return Layout(props,
		A(Href("/"), g.Text("← "+s.BackHome)),
		Span(Class("badge"), g.Text(s.KnowledgeHub)),
		H1(g.Text(s.ArchiveTitle)),
		Form(Class("search"), Method("get"), Action("/blog"),
			Input(Type("search"), Name("q"), Value(list.Query), Placeholder(s.SearchHint)),
		),
		H3(g.Text(s.AllArticles)),
		g.If(list.Notice != "", Banner("warn", list.Notice)),
		postGrid(props, list),
	)
}

// PostPage shows a single post. demo marks a sample post served because the
// store was unreachable.
func PostPage(props LayoutProps, p PostView, demo bool) g.Node {
	s := props.strings()

	return Layout(props,
		A(Href("/"), g.Text("← "+s.BackHome)),
		Article(Class("post"),
			g.If(p.ImageURL != "", Img(Class("cover"), Src(p.ImageURL), Alt(p.Title))),
			Div(Class("meta"),
				Span(Class("badge"), g.Text(p.Category)),
				g.Text(p.Date),
				g.If(demo, Span(Class("badge warn"), g.Text(s.DemoBadge))),
				g.If(p.Translating, Span(Class("badge warn"), g.Text(s.Translating))),
			),
			H1(g.Text(p.Title)),
			Div(Class("body"), Markdown(p.Body)),
			P(A(Href("/?post="+strconv.FormatInt(p.ID, 10)), g.Text(s.Share))),
		),
	)
}

func NotFoundPage(props LayoutProps) g.Node {
	s := props.strings()

	return Layout(props,
		Div(Class("banner banner-error"),
			H2(g.Text(s.PostNotFound)),
			A(Class("button"), Href("/"), g.Text(s.ReturnHome)),
		),
	)
}
