package mailer

const (
	TemplateConfirmEmail  = "confirm_email"
	TemplateResetPassword = "reset_password"
	TemplateWelcome       = "welcome"
)

type templateSource struct {
	html string
	text string
}

const layoutOpen = `<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;background:#f5f7fb;padding:24px">
<div style="max-width:560px;margin:0 auto;background:#fff;border-radius:8px;padding:32px">
<h2 style="color:#4f46e5;margin-top:0">{{.AppName}}</h2>`

const layoutClose = `<p style="color:#888;font-size:12px;margin-top:32px">You received this email because an account on {{.AppName}} uses this address.</p>
</div></body></html>`

var templateSources = map[string]templateSource{
	TemplateConfirmEmail: {
		html: layoutOpen + `
<p>Hi {{.Name}},</p>
<p>Thanks for joining {{.AppName}}. Please confirm your email address to activate your account.</p>
<p><a href="{{.Link}}" style="background:#4f46e5;color:#fff;padding:12px 20px;border-radius:6px;text-decoration:none">Confirm email</a></p>
<p>This link expires in 24 hours.</p>` + layoutClose,
		text: `Hi {{.Name}},

Thanks for joining {{.AppName}}. Confirm your email address here:
{{.Link}}

This link expires in 24 hours.`,
	},
	TemplateResetPassword: {
		html: layoutOpen + `
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password.</p>
<p><a href="{{.Link}}" style="background:#4f46e5;color:#fff;padding:12px 20px;border-radius:6px;text-decoration:none">Reset password</a></p>
<p>This link expires in 1 hour. If you did not ask for it, you can ignore this email.</p>` + layoutClose,
		text: `Hi {{.Name}},

Reset your {{.AppName}} password here:
{{.Link}}

This link expires in 1 hour. If you did not ask for it, ignore this email.`,
	},
	TemplateWelcome: {
		html: layoutOpen + `
<p>Hi {{.Name}},</p>
<p>Your email is confirmed. Complete your profile to start connecting with teachers, students and schools.</p>
<p><a href="{{.FrontendURL}}/complete-profile">Complete your profile</a></p>` + layoutClose,
		text: `Hi {{.Name}},

Your email is confirmed. Complete your profile: {{.FrontendURL}}/complete-profile`,
	},
}
