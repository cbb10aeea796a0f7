package main

import (
	"net/http"

	mw "villaserena.it/serena-web/internal/middleware"
	"villaserena.it/serena-web/internal/notice"
)

// ContactSubmitHandler validates a booking enquiry. Invalid submissions get
// the form back with per-field messages and the entered values preserved;
// valid ones post a transient success notice.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	values := make(map[string]string, len(bookingForm.Fields()))
	for _, f := range bookingForm.Fields() {
		values[f.ID] = r.PostFormValue(f.ID)
	}

	csrf := mw.GetSession(r).CSRFToken
	if err := bookingForm.Validate(values); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderTemplate(w, r, "frag_contact", buildContactView(lang, csrf, values, err))
		return
	}

	notices.Post(notice.Success, i18nBundle.T(lang, "form.success"))

	view := buildContactView(lang, csrf, nil, nil)
	view.OK = true
	renderTemplate(w, r, "frag_contact", view)
}
