package main

import (
	"log"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"villaserena.it/serena-web/internal/content"
	"villaserena.it/serena-web/internal/format"
)

type slideView struct {
	Index   int
	Total   int
	Image   string
	Heading string
	Sub     string
}

type imageView struct {
	Index   int
	Total   int
	Src     string
	Thumb   string
	Alt     string
	Loading string
}

type layoutView struct {
	Index    int
	ID       string
	Name     string
	Capacity string
	Price    string
	Summary  string
	Active   bool
}

type reviewView struct {
	Index  int
	Total  int
	Author string
	Origin string
	Rating int
	Quote  string
}

// Stars gives templates something to range over when drawing the rating.
func (v reviewView) Stars() []struct{} {
	return make([]struct{}, v.Rating)
}

type contactView struct {
	Lang   string
	CSRF   string
	Values map[string]string
	Errors map[string]string
	OK     bool
}

type homeView struct {
	Lang             string
	Tagline          string
	Slide            slideView
	SliderIntervalMS int
	LoaderDismissMS  int
	Gallery          []imageView
	Layouts          []layoutView
	Review           reviewView
	ReviewIntervalMS int
	Story            *content.Page
	Contact          contactView
}

func buildSlideView(lang string, i int) slideView {
	s := site.Slides[i]
	return slideView{
		Index:   i,
		Total:   len(site.Slides),
		Image:   s.Image,
		Heading: s.Heading.In(lang),
		Sub:     s.Sub.In(lang),
	}
}

func buildImageView(lang string, i int) imageView {
	img := site.Gallery[i]
	return imageView{
		Index:   i,
		Total:   len(site.Gallery),
		Src:     img.Src,
		Thumb:   img.Thumb,
		Alt:     img.Alt.In(lang),
		Loading: lazyStrategy.LoadingAttr(),
	}
}

func buildGalleryViews(lang string) []imageView {
	out := make([]imageView, 0, len(site.Gallery))
	for i := range site.Gallery {
		out = append(out, buildImageView(lang, i))
	}
	return out
}

func buildLayoutViews(lang string, active int) []layoutView {
	out := make([]layoutView, 0, len(site.Layouts))
	for i, l := range site.Layouts {
		out = append(out, layoutView{
			Index:    i,
			ID:       l.ID,
			Name:     l.Name.In(lang),
			Capacity: format.Guests(l.Capacity, lang),
			Price:    format.Currency(l.PriceFrom, "EUR", lang),
			Summary:  l.Summary.In(lang),
			Active:   i == active,
		})
	}
	return out
}

func buildReviewView(lang string, i int) reviewView {
	r := site.Reviews[i]
	return reviewView{
		Index:  i,
		Total:  len(site.Reviews),
		Author: r.Author,
		Origin: r.Origin,
		Rating: r.Rating,
		Quote:  r.Quote.In(lang),
	}
}

// fieldErrorMessages turns a Validate result into localized per-field
// messages keyed by field identifier.
func fieldErrorMessages(lang string, err error) map[string]string {
	errs, ok := err.(validation.Errors)
	if !ok || len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for id, ferr := range errs {
		key := "form.error.invalid"
		if ve, ok := ferr.(validation.Error); ok {
			switch ve.Code() {
			case "forms.field_required":
				key = "form.error.required"
			case "forms.email_invalid":
				key = "form.error.email"
			case "forms.number_not_positive":
				key = "form.error.guests"
			}
		}
		out[id] = i18nBundle.T(lang, key)
	}
	return out
}

func buildContactView(lang, csrf string, values map[string]string, err error) contactView {
	if values == nil {
		values = map[string]string{}
	}
	return contactView{
		Lang:   lang,
		CSRF:   csrf,
		Values: values,
		Errors: fieldErrorMessages(lang, err),
	}
}

func buildHomeView(lang, csrf string) homeView {
	vm := homeView{
		Lang:             lang,
		Tagline:          site.Venue.Tagline.In(lang),
		Slide:            buildSlideView(lang, 0),
		SliderIntervalMS: int(site.Timers.SliderInterval().Milliseconds()),
		LoaderDismissMS:  int(site.Timers.LoaderDismiss().Milliseconds()),
		Gallery:          buildGalleryViews(lang),
		Layouts:          buildLayoutViews(lang, 0),
		ReviewIntervalMS: int(site.Timers.ReviewInterval().Milliseconds()),
		Contact:          buildContactView(lang, csrf, nil, nil),
	}
	if i, ok := reviewBoard.Current(); ok {
		vm.Review = buildReviewView(lang, i)
	}
	if page, err := content.LoadPage(contentDir, "story", lang); err == nil {
		vm.Story = &page
	} else {
		log.Printf("home: story page unavailable: %v", err)
	}
	return vm
}
