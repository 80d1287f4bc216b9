package models

// Theme holds the editable site colors and fonts.
type Theme struct {
	Primary     string `json:"primary" yaml:"primary"`
	Secondary   string `json:"secondary" yaml:"secondary"`
	HeadingFont string `json:"heading_font" yaml:"heading_font"`
	BodyFont    string `json:"body_font" yaml:"body_font"`
}

func DefaultTheme() Theme {
	return Theme{
		Primary:     "#1F2937",
		Secondary:   "#FBBF24",
		HeadingFont: "Teko",
		BodyFont:    "Inter",
	}
}

type AboutFeature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type AboutContent struct {
	Title    string         `json:"title" yaml:"title"`
	Subtitle string         `json:"subtitle" yaml:"subtitle"`
	Features []AboutFeature `json:"features" yaml:"features"`
}

func DefaultAboutContent() AboutContent {
	return AboutContent{
		Title:    "Tentang PSKPP",
		Subtitle: "Memperkasa Sukan dalam Perkhidmatan Pendidikan.",
		Features: []AboutFeature{
			{Title: "Semangat Kesukanan", Description: "Mempromosikan gaya hidup sihat dan memupuk semangat kesukanan yang tinggi di kalangan warga pendidik."},
			{Title: "Bakat Terpendam", Description: "Memberi peluang kepada warga pendidik untuk menunjukkan bakat terpendam mereka di dalam setiap acara sukan yang disertai."},
		},
	}
}

type ContactFormLabels struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Message string `json:"message" yaml:"message"`
	Submit  string `json:"submit" yaml:"submit"`
}

type ContactContent struct {
	Title      string            `json:"title" yaml:"title"`
	Subtitle   string            `json:"subtitle" yaml:"subtitle"`
	FormLabels ContactFormLabels `json:"form_labels" yaml:"form_labels"`
}

func DefaultContactContent() ContactContent {
	return ContactContent{
		Title:    "Hubungi Kami",
		Subtitle: "Ada sebarang pertanyaan? Hantarkan mesej kepada kami.",
		FormLabels: ContactFormLabels{
			Name:    "Nama Penuh",
			Email:   "Alamat E-mel",
			Message: "Mesej Anda",
			Submit:  "Hantar Mesej",
		},
	}
}

type NavLink struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

type FooterContent struct {
	Description string    `json:"description" yaml:"description"`
	QuickLinks  []NavLink `json:"quick_links" yaml:"quick_links"`
	SocialText  string    `json:"social_text" yaml:"social_text"`
}

func DefaultFooterContent() FooterContent {
	return FooterContent{
		Description: "Pesta Persatuan Sukan dan Kebudayaan Perkhidmatan Pendidikan Malaysia.",
		QuickLinks: []NavLink{
			{Name: "Tentang Kami", Href: "#about"},
			{Name: "Acara", Href: "#events"},
			{Name: "Galeri", Href: "#gallery"},
		},
		SocialText: "Facebook | Instagram | Twitter",
	}
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// HeroBackground is the landing section background. Active selects which of
// Image or Video is shown.
type HeroBackground struct {
	Image  string    `json:"image" yaml:"image"`
	Video  string    `json:"video,omitempty" yaml:"video,omitempty"`
	Active MediaType `json:"active" yaml:"active"`
}

func DefaultHeroBackground() HeroBackground {
	return HeroBackground{
		Image:  "https://picsum.photos/1920/1080?random=1",
		Active: MediaImage,
	}
}

type Sponsor struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	LogoURL string `json:"logo_url" yaml:"logo_url"`
	// Ключ объекта в хранилище, если логотип загружен через нас.
	StorageKey string `json:"storage_key,omitempty" yaml:"storage_key,omitempty"`
}

func (s Sponsor) Key() string { return s.ID }

type GalleryItem struct {
	ID         string    `json:"id" yaml:"id"`
	Type       MediaType `json:"type" yaml:"type"`
	Src        string    `json:"src" yaml:"src"`
	StorageKey string    `json:"storage_key,omitempty" yaml:"storage_key,omitempty"`
}

func (g GalleryItem) Key() string { return g.ID }

// ManagedLink is an external link shown in the floating link menu.
type ManagedLink struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (l ManagedLink) Key() string { return l.ID }

// SiteContent is everything the public page needs in one response.
type SiteContent struct {
	Theme   Theme          `json:"theme"`
	About   AboutContent   `json:"about"`
	Contact ContactContent `json:"contact"`
	Footer  FooterContent  `json:"footer"`
	Hero    HeroBackground `json:"hero"`
	Links   []ManagedLink  `json:"links"`
}

// AdminProfile is the administrator's avatar shown in the header while
// editing.
type AdminProfile struct {
	ImageURL   string `json:"image_url" yaml:"image_url"`
	StorageKey string `json:"storage_key,omitempty" yaml:"storage_key,omitempty"`
}
