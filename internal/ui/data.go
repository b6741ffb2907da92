package ui

import (
	"log"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/utils"
)

// Creates new default data struct to be passed to the templates
// It's envoked in a middleware and passed donwstream as value to the request context.
func (s *service) NewData(w http.ResponseWriter, r *http.Request) *models.TemplateData {

	data := &models.TemplateData{
		StaticFiles: s.StaticFiles(),
		AppName:     s.config.AppName,
		CurrentURI:  r.URL.Path,
		CSRFField:   csrf.TemplateField(r),
	}

	// Check if the path needs flash messages
	if !utils.NeedsCookie(w, r) {
		return data
	}

	// Check for flash cookie
	if _, err := r.Cookie(s.config.FlashSessionName); err != nil {
		return data
	}

	// Get any flash messages from session
	session, err := s.store.Get(r, s.config.FlashSessionName)
	if err != nil {
		log.Printf("unable to get the flash session; %v", err)
		return data
	}

	var flashMessages []*models.FlashMessage
	for _, v := range session.Flashes() {
		if flash, ok := v.(*models.FlashMessage); ok && flash != nil {
			flashMessages = append(flashMessages, flash)
		}
	}

	// Clear the flash session created with s.store.Get
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("unable to clear/save the flash session; %v", err)
	}

	data.FlashMessages = flashMessages
	return data
}
