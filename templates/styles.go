package templates

const stylesheet = `
:root { --bg: #0f172a; --fg: #e2e8f0; --muted: #94a3b8; --accent: #38bdf8; --card: #1e293b; --warn: #f59e0b; --err: #ef4444; }
* { box-sizing: border-box; }
body { margin: 0; background: var(--bg); color: var(--fg); font-family: system-ui, "Noto Sans Bengali", sans-serif; line-height: 1.6; }
a { color: var(--accent); text-decoration: none; }
.container { max-width: 1080px; margin: 0 auto; padding: 1.5em 1em; }
.nav { display: flex; justify-content: space-between; align-items: center; margin-bottom: 2em; }
.nav-right { display: flex; gap: 1em; align-items: center; }
.brand a { font-weight: 800; letter-spacing: .1em; color: var(--fg); }
.row { display: flex; gap: .75em; align-items: center; }
.button { background: var(--accent); color: var(--bg); border: 0; padding: .5em 1em; border-radius: .4em; cursor: pointer; font-weight: 600; }
.button.clear { background: transparent; color: var(--accent); padding: 0; }
.button.danger { background: var(--err); color: #fff; }
.hero { padding: 3em 0; }
.hero h1 { font-size: 2.6em; margin: .2em 0; }
.badge { display: inline-block; font-size: .75em; padding: .15em .6em; border-radius: 1em; background: var(--card); color: var(--accent); margin-right: .4em; }
.badge.warn { color: var(--warn); }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 1.5em; }
.card { background: var(--card); border-radius: .8em; overflow: hidden; }
.card img { width: 100%; height: 180px; object-fit: cover; }
.card .card-body { padding: 1em 1.2em; }
.meta { color: var(--muted); font-size: .85em; }
.banner { padding: .8em 1em; border-radius: .5em; margin-bottom: 1.5em; background: var(--card); }
.banner-warn { border-left: 4px solid var(--warn); }
.banner-error { border-left: 4px solid var(--err); }
.banner pre { white-space: pre-wrap; background: var(--bg); padding: .6em; border-radius: .4em; }
article.post img.cover { width: 100%; max-height: 420px; object-fit: cover; border-radius: .8em; }
article.post .body { font-size: 1.1em; }
form.stacked label { display: block; margin-top: 1em; color: var(--muted); }
form.stacked input[type=text], form.stacked input[type=email], form.stacked input[type=password], form.stacked textarea, form.search input { width: 100%; padding: .6em; border-radius: .4em; border: 1px solid #334155; background: var(--bg); color: var(--fg); }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: .5em; border-bottom: 1px solid #334155; }
.section { padding: 2.5em 0; }
.accent { color: var(--accent); }
.chips { display: flex; flex-wrap: wrap; gap: .4em; margin-bottom: 1em; }
.cta { margin-top: 1.5em; }
.contact { text-align: center; }
.socials { justify-content: center; }
.footer { text-align: center; color: var(--muted); padding: 2em 0 6em; }
#chat { position: fixed; right: 1.2em; bottom: 1.2em; width: 340px; max-width: calc(100vw - 2.4em); }
#chat .chat-panel { display: none; background: var(--card); border-radius: .8em; padding: 1em; margin-bottom: .6em; }
#chat.open .chat-panel { display: block; }
#chat .chat-log { height: 280px; overflow-y: auto; font-size: .9em; }
#chat .msg { margin: .4em 0; padding: .4em .7em; border-radius: .6em; background: var(--bg); }
#chat .msg.user { background: #0369a1; margin-left: 2em; }
#chat form { display: flex; gap: .4em; margin-top: .6em; }
#chat input { flex: 1; padding: .5em; border-radius: .4em; border: 0; }
#chat .chat-toggle { float: right; border-radius: 50%; width: 3.2em; height: 3.2em; }
`
