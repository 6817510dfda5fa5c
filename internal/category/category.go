package category

// Category buckets subscriptions by what they are for.
type Category string

const (
	Entertainment Category = "ENTERTAINMENT"
	Music         Category = "MUSIC"
	Video         Category = "VIDEO"
	Shopping      Category = "SHOPPING"
	Software      Category = "SOFTWARE"
	Education     Category = "EDUCATION"
	Fitness       Category = "FITNESS"
	Storage       Category = "STORAGE"
	News          Category = "NEWS"
	Other         Category = "OTHER"
)

func (c Category) Korean() string {
	switch c {
	case Entertainment:
		return "엔터테인먼트"
	case Music:
		return "음악"
	case Video:
		return "동영상"
	case Shopping:
		return "쇼핑"
	case Software:
		return "소프트웨어"
	case Education:
		return "교육"
	case Fitness:
		return "운동/건강"
	case Storage:
		return "클라우드"
	case News:
		return "뉴스/잡지"
	}

	return "기타"
}

func (c Category) Emoji() string {
	switch c {
	case Entertainment:
		return "🎬"
	case Music:
		return "🎵"
	case Video:
		return "📺"
	case Shopping:
		return "🛒"
	case Software:
		return "💻"
	case Education:
		return "📚"
	case Fitness:
		return "💪"
	case Storage:
		return "☁️"
	case News:
		return "📰"
	}

	return "📦"
}

// DisplayName is the emoji-prefixed Korean label used in reports.
func (c Category) DisplayName() string {
	return c.Emoji() + " " + c.Korean()
}

// Mapping assigns known service name fragments to categories. Matching is a
// case-insensitive contains check over the fragment.
type Mapping map[string]Category

// DefaultMapping covers the common Korean subscription services.
func DefaultMapping() Mapping {
	return Mapping{
		"넷플릭스": Entertainment,
		"왓챠":   Entertainment,
		"디즈니":  Entertainment,
		"웨이브":  Entertainment,
		"티빙":   Entertainment,

		"스포티파이": Music,
		"멜론":    Music,
		"애플뮤직":  Music,
		"유튜브뮤직": Music,

		"유튜브": Video,

		"쿠팡":  Shopping,
		"네이버": Shopping,
		"아마존": Shopping,

		"어도비":     Software,
		"마이크로소프트": Software,
		"노션":      Software,
		"슬랙":      Software,

		"드롭박스":   Storage,
		"구글드라이브": Storage,
		"아이클라우드": Storage,

		"애플피트니스": Fitness,
		"나이키":    Fitness,
	}
}
