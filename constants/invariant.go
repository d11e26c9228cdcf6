package constants

const (
	APP_NAME   = "SHS Portfolio"
	OWNER_NAME = "MD SAHADAT HOSSEN SHIHAB"

	// posts shown on the home page before "view all"
	HOME_POSTS_TO_SHOW = 3
	MAX_POSTS_TO_SHOW  = 2000
	MAX_POST_LENGTH    = 20000
	MAX_UPLOAD_BYTES   = 10 << 20

	DEFAULT_CATEGORY = "General"
	DATE_LAYOUT      = "Jan 2, 2006"

	// typing this into the chat widget opens the admin sign in
	ADMIN_CHAT_COMMAND = "SHS PANEL"

	LANG_COOKIE_NAME = "lang"

	RLS_REMEDIATION_SQL = `create policy "Enable all for anon" on posts for all to anon using (true) with check (true);`
)
