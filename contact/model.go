package contact

type ContactAPIConfig struct {
	Mailer ContactMailer
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type WorkforceContactRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Organization string `json:"organization" binding:"required"`
	Message      string `json:"message" binding:"required"`
}

type ContactMailer interface {
	SendContactMessage(name string, email string, organization string, body string) error
}
