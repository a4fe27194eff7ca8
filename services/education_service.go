package services

import (
	"html/template"

	"github.com/russross/blackfriday/v2"

	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
)

// EducationSection is one rendered article of the patient education library.
type EducationSection struct {
	Slug  string        `json:"slug"`
	Title string        `json:"title"`
	HTML  template.HTML `json:"html"`
}

// EducationService serves the static patient education library. The source
// articles are authored in markdown and rendered once at construction.
type EducationService struct {
	sections []EducationSection
	bySlug   map[string]*EducationSection
}

type educationArticle struct {
	slug, title, markdown string
}

var educationArticles = []educationArticle{
	{
		slug:  "about-pots",
		title: "What is POTS?",
		markdown: `Postural Orthostatic Tachycardia Syndrome (POTS) is a form of
dysautonomia where standing up triggers an abnormal increase in heart rate,
typically **30 bpm or more** within ten minutes of standing, without a
matching drop in blood pressure.

Common symptoms include dizziness, lightheadedness, palpitations, fatigue,
and brain fog. Symptoms improve when lying down and worsen with heat,
dehydration, and prolonged standing.`,
	},
	{
		slug:  "volume-expansion",
		title: "Fluid and Salt Loading",
		markdown: `Expanding blood volume is the first-line non-pharmacological
intervention.

- Drink at least **3000 ml of fluid** per day.
- Take in up to **10 g of sodium** per day unless contraindicated.
- Front-load intake in the morning, when orthostatic intolerance peaks.

Log every intake so the dashboard can show your daily totals against these
goals.`,
	},
	{
		slug:  "countermeasures",
		title: "Physical Countermeasures",
		markdown: `Physical countermeasures raise blood pressure acutely by
activating the skeletal muscle pump. Use them at symptom onset or before
prolonged standing:

1. **Leg crossing** with muscle tensing while standing.
2. **Squatting** to force venous return.
3. **Muscle pumping**: repeated calf raises or marching in place.
4. **Hand grip**: squeezing a ball or fist clenching.
5. **Cough CPR**: forceful coughing to transiently raise pressure.`,
	},
	{
		slug:  "exercise",
		title: "Reconditioning Exercise",
		markdown: `Structured exercise is the only intervention shown to produce
lasting improvement. Start **horizontal** (recumbent bike, rowing,
swimming) to avoid orthostatic stress, then progress to **upright** work as
tolerance improves.

Track each session's modality, duration, and perceived exertion so you can
see the progression over time.`,
	},
	{
		slug:  "compression-and-sleep",
		title: "Compression Garments and Sleep Position",
		markdown: `Compression garments reduce venous pooling. **Abdominal**
compression is the most effective single zone; **full lower-body**
compression adds benefit when tolerated.

Sleeping with the **head of the bed elevated** by 10-15 cm conditions the
circulation against orthostatic stress and reduces nocturnal fluid loss.`,
	},
	{
		slug:  "skin-cooling",
		title: "Skin Cooling in Heat",
		markdown: `Heat dilates skin blood vessels and worsens pooling. When
symptomatic in warm conditions, cool the skin surface: a cool shower, ice
packs on the neck and wrists, a cooling vest, or a spray bottle with a fan.

Log each cooling intervention together with the conditions that triggered
it, so patterns become visible.`,
	},
}

// NewEducationService renders the article library to HTML.
func NewEducationService() *EducationService {
	s := &EducationService{
		bySlug: make(map[string]*EducationSection, len(educationArticles)),
	}
	for _, a := range educationArticles {
		rendered := blackfriday.Run([]byte(a.markdown))
		s.sections = append(s.sections, EducationSection{
			Slug:  a.slug,
			Title: a.title,
			HTML:  template.HTML(rendered), // #nosec G203 -- rendered from trusted embedded markdown
		})
	}
	for i := range s.sections {
		s.bySlug[s.sections[i].Slug] = &s.sections[i]
	}
	return s
}

// Sections returns every article in library order.
func (s *EducationService) Sections() []EducationSection {
	return s.sections
}

// Section returns one article by slug.
func (s *EducationService) Section(slug string) (*EducationSection, error) {
	sec, ok := s.bySlug[slug]
	if !ok {
		return nil, apperrors.NotFound("Education section", slug)
	}
	return sec, nil
}
