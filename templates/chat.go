package templates

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"portfolio/i18n"
)

// ChatWidget is the floating assistant. It talks to /api/v1/chat and keeps
// the transcript in the page only.
func ChatWidget(lang i18n.Language) g.Node {
	s := i18n.For(lang)

	return Div(ID("chat"),
		Div(Class("chat-panel"),
			Div(Class("row"),
				Strong(g.Text(s.ChatHeader)),
				Span(Class("badge"), g.Text(s.ChatOnline)),
			),
			Div(Class("chat-log"), ID("chat-log"),
				Div(Class("msg"), g.Text(s.ChatGreeting)),
			),
			Form(ID("chat-form"), g.Attr("autocomplete", "off"),
				Input(Type("text"), Name("message"), ID("chat-input"), Placeholder(s.ChatPlaceholder)),
				Button(Type("submit"), Class("button"), g.Text(s.ChatSend)),
			),
		),
		Button(Type("button"), Class("button chat-toggle"), ID("chat-toggle"), g.Text("AI")),
		g.Attr("data-thinking", s.ChatThinking),
		g.Attr("data-greeting", s.ChatGreeting),
		Script(g.Raw(chatScript)),
	)
}

const chatScript = `
(function () {
	var root = document.getElementById('chat');
	var log = document.getElementById('chat-log');
	var form = document.getElementById('chat-form');
	var input = document.getElementById('chat-input');
	var history = [{ role: 'model', text: root.dataset.greeting }];

	document.getElementById('chat-toggle').onclick = function () {
		root.classList.toggle('open');
		if (root.classList.contains('open')) input.focus();
	};

	function add(role, text) {
		var el = document.createElement('div');
		el.className = 'msg' + (role === 'user' ? ' user' : '');
		el.textContent = text;
		log.appendChild(el);
		log.scrollTop = log.scrollHeight;
		return el;
	}

	form.onsubmit = function (e) {
		e.preventDefault();
		var text = input.value.trim();
		if (!text) return;
		input.value = '';
		add('user', text);
		var pending = add('model', root.dataset.thinking);

		fetch('/api/v1/chat', {
			method: 'POST',
			headers: { 'Content-Type': 'application/json' },
			body: JSON.stringify({ message: text, history: history })
		}).then(function (res) { return res.json(); }).then(function (data) {
			if (data.action === 'admin_login') {
				window.location.href = '/signin';
				return;
			}
			pending.textContent = data.reply;
			history.push({ role: 'user', text: text }, { role: 'model', text: data.reply });
		}).catch(function () {
			pending.textContent = '...';
		});
	};
})();
`
