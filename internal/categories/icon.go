package categories

import "strings"

// FallbackIcon is shown when nothing in the icon table fits a name.
const FallbackIcon = "📦"

type iconEntry struct {
	keyword string
	icon    string
}

// iconTable is searched in order for substring matches, so earlier
// entries win over later ones.
var iconTable = []iconEntry{
	// Money
	{"investment", "📈"}, {"invest", "📈"}, {"stocks", "📈"}, {"trading", "📊"},
	{"retirement", "🏖️"}, {"401k", "🏖️"}, {"ira", "🏖️"}, {"pension", "🏖️"},
	{"emergency", "🆘"}, {"fund", "💰"}, {"savings", "💎"}, {"save", "💰"},
	{"debt", "💳"}, {"loan", "🏦"}, {"credit", "💳"}, {"mortgage", "🏠"},

	// Food
	{"food", "🍽️"}, {"restaurant", "🍴"}, {"dining", "🍽️"}, {"grocery", "🛒"},
	{"coffee", "☕"}, {"lunch", "🥪"}, {"dinner", "🍽️"}, {"breakfast", "🥐"},
	{"snack", "🍿"}, {"drinks", "🥤"}, {"alcohol", "🍷"}, {"bar", "🍻"},
	{"fast food", "🍔"}, {"pizza", "🍕"}, {"sushi", "🍣"}, {"dessert", "🍰"},

	// Getting around
	{"car", "🚗"}, {"gas", "🔥"}, {"fuel", "⛽"}, {"auto", "🚗"},
	{"vehicle", "🚗"}, {"uber", "🚕"}, {"taxi", "🚕"}, {"rideshare", "🚕"},
	{"lyft", "🚕"}, {"bus", "🚌"}, {"train", "🚊"}, {"subway", "🚇"},
	{"metro", "🚇"}, {"parking", "🅿️"}, {"toll", "🛣️"}, {"bike", "🚲"},
	{"scooter", "🛴"}, {"flight", "✈️"}, {"airplane", "✈️"}, {"travel", "✈️"},
	{"vacation", "🏖️"},

	// Home
	{"rent", "🏠"}, {"housing", "🏠"}, {"home", "🏠"}, {"apartment", "🏢"},
	{"condo", "🏢"}, {"house", "🏡"}, {"property", "🏘️"}, {"furniture", "🪑"},
	{"decor", "🖼️"}, {"appliance", "🔌"}, {"repair", "🔧"}, {"garden", "🌱"},
	{"lawn", "🌱"}, {"yard", "🌳"}, {"landscaping", "🌿"},

	// Bills
	{"electric", "⚡"}, {"electricity", "⚡"}, {"power", "⚡"}, {"energy", "⚡"},
	{"water", "💧"}, {"internet", "🌐"}, {"wifi", "📶"}, {"phone", "📱"},
	{"cell", "📱"}, {"mobile", "📱"}, {"cable", "📺"}, {"trash", "🗑️"},
	{"garbage", "🗑️"}, {"recycling", "♻️"}, {"sewer", "🚰"},

	// Fun
	{"movie", "🎬"}, {"cinema", "🎬"}, {"theater", "🎭"}, {"show", "🎪"},
	{"game", "🎮"}, {"gaming", "🎮"}, {"xbox", "🎮"}, {"playstation", "🎮"},
	{"music", "🎵"}, {"spotify", "🎵"}, {"concert", "🎤"}, {"festival", "🎪"},
	{"book", "📖"}, {"reading", "📖"}, {"magazine", "📰"}, {"newspaper", "📰"},
	{"hobby", "🎨"}, {"craft", "✂️"}, {"art", "🎨"}, {"paint", "🎨"},
	{"sport", "⚽"}, {"gym", "💪"}, {"fitness", "💪"}, {"yoga", "🧘"},
	{"netflix", "📺"}, {"streaming", "📺"}, {"subscription", "📱"}, {"app", "📱"},

	// Health
	{"health", "🏥"}, {"medical", "🏥"}, {"doctor", "👨‍⚕️"}, {"hospital", "🏥"},
	{"dentist", "🦷"}, {"dental", "🦷"}, {"pharmacy", "💊"}, {"medicine", "💊"},
	{"insurance", "🛡️"}, {"therapy", "💆"}, {"massage", "💆"}, {"spa", "🧖"},
	{"vitamin", "💊"}, {"supplement", "💊"}, {"prescription", "💊"}, {"checkup", "🩺"},

	// Shopping
	{"shopping", "🛍️"}, {"clothes", "👕"}, {"clothing", "👕"}, {"fashion", "👗"},
	{"shoes", "👟"}, {"accessories", "💍"}, {"jewelry", "💎"}, {"watch", "⌚"},
	{"electronics", "📱"}, {"computer", "💻"}, {"laptop", "💻"}, {"gift", "🎁"},
	{"present", "🎁"}, {"toy", "🧸"}, {"kids", "👶"},

	// Learning
	{"education", "🎓"}, {"school", "🏫"}, {"college", "🎓"}, {"university", "🎓"},
	{"course", "📚"}, {"class", "📚"}, {"tuition", "🎓"}, {"training", "📚"},
	{"seminar", "📚"}, {"workshop", "🔨"}, {"certification", "📜"},

	// Work
	{"business", "💼"}, {"work", "💼"}, {"office", "🏢"}, {"supplies", "📎"},
	{"equipment", "⚙️"}, {"tools", "🔧"}, {"software", "💻"}, {"conference", "🗣️"},
	{"meeting", "🗣️"}, {"networking", "🤝"}, {"client", "🤝"},

	// Personal care
	{"haircut", "💇"}, {"salon", "💇"}, {"beauty", "💄"}, {"cosmetics", "💄"},
	{"skincare", "🧴"}, {"grooming", "🐕"}, {"barber", "💇‍♂️"}, {"nails", "💅"},

	// Pets
	{"pet", "🐕"}, {"dog", "🐕"}, {"cat", "🐱"}, {"vet", "🐕"},
	{"veterinary", "🐕"}, {"pet food", "🥣"}, {"animal", "🐾"},

	// Everything else
	{"charity", "❤️"}, {"donation", "❤️"}, {"tip", "💰"}, {"fee", "💰"},
	{"tax", "💰"}, {"fine", "💰"}, {"penalty", "⚠️"}, {"membership", "🎫"},
	{"dues", "💰"}, {"license", "📜"},
}

var iconIndex = func() map[string]string {
	idx := make(map[string]string, len(iconTable))
	for _, e := range iconTable {
		idx[e.keyword] = e.icon
	}
	return idx
}()

// iconHints are checked after the table, in order.
var iconHints = []struct {
	words []string
	icon  string
}{
	{[]string{"pay", "bill"}, "💳"},
	{[]string{"fun", "enjoy"}, "🎉"},
	{[]string{"baby", "child"}, "👶"},
	{[]string{"senior", "elder"}, "👵"},
	{[]string{"tech", "digital"}, "💻"},
	{[]string{"green", "eco"}, "🌱"},
	{[]string{"luxury", "premium"}, "💎"},
	{[]string{"quick", "fast"}, "⚡"},
	{[]string{"special", "event"}, "🎪"},
}

// IconFor picks a glyph for a category name. Exact keyword matches win,
// then the first table entry that overlaps the name in either direction,
// then a handful of loose hints, then FallbackIcon.
func IconFor(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return FallbackIcon
	}

	if icon, ok := iconIndex[lowered]; ok {
		return icon
	}

	for _, e := range iconTable {
		if strings.Contains(lowered, e.keyword) || strings.Contains(e.keyword, lowered) {
			return e.icon
		}
	}

	for _, hint := range iconHints {
		for _, w := range hint.words {
			if strings.Contains(lowered, w) {
				return hint.icon
			}
		}
	}

	return FallbackIcon
}
