package templates

import (
	"net/url"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"portfolio/constants"
	"portfolio/i18n"
)

type LayoutProps struct {
	Title        string
	Lang         i18n.Language
	CurrentAdmin string
	// Path is where the language toggle sends the visitor back to.
	Path string
}

func (p LayoutProps) strings() i18n.Strings {
	return i18n.For(p.Lang)
}

func NavbarComponent(props LayoutProps) g.Node {
	s := props.strings()
	other := props.Lang.Other()

	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href("/"), g.Text(constants.APP_NAME))),
		),
		Div(Class("nav-links nav-right"),
			A(Href("/#profile"), g.Text(s.NavProfile)),
			A(Href("/blog"), g.Text(s.NavInsights)),
			A(Class("lang-toggle"), Href("/lang/"+other.String()+"?next="+url.QueryEscape(props.Path)),
				g.Text(other.Name()),
			),
			g.If(props.CurrentAdmin != "",
				Div(Class("row"),
					Div(Class("col"), A(Href("/dashboard"), g.Text(s.NavPanel))),
					Div(Class("col"), Small(g.Text(props.CurrentAdmin))),
					Div(Class("col"),
						Form(Method("post"), Action("/logout"),
							Button(Type("submit"), Class("button clear"), g.Text("Logout")),
						),
					),
				)),
		),
	)
}

func FooterComponent() g.Node {
	return Footer(Class("footer"),
		P(Class("with-love"),
			Small(g.Textf("%s · %s", constants.OWNER_NAME, constants.APP_NAME)),
		),
	)
}

func Layout(props LayoutProps, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang(props.Lang.String()),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("icon"), Type("image/svg+xml"), Href("data:image/svg+xml,<svg xmlns=%22http://www.w3.org/2000/svg%22 viewBox=%220 0 100 100%22><text y=%22.9em%22 font-size=%2290%22>⚡</text></svg>")),
				StyleEl(g.Raw(stylesheet)),
				TitleEl(g.Text(pageTitle(props.Title))),
			),
			Body(
				Div(Class("container"),
					NavbarComponent(props),
					Main(
						g.Group(children),
					),
				),
				FooterComponent(),
				ChatWidget(props.Lang),
			),
		),
	)
}

func pageTitle(title string) string {
	if title == "" {
		return constants.APP_NAME
	}
	return title + " | " + constants.APP_NAME
}

// Banner is a full-width notice above the page content.
func Banner(kind, text string) g.Node {
	return Div(Class("banner banner-"+kind), g.Text(text))
}
