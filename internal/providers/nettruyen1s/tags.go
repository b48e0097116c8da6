package nettruyen1s

import "github.com/brogergvhs/mangasrc/internal/providers"

var tags = []providers.Tag{
	{Name: "Tất cả", ID: ""},
	{Name: "Action", ID: "action"},
	{Name: "Adventure", ID: "adventure"},
	{Name: "AI", ID: "ai"},
	{Name: "Anime", ID: "anime"},
	{Name: "Chuyển Sinh", ID: "chuyen-sinh"},
	{Name: "Cổ Đại", ID: "co-dai"},
	{Name: "Cổ Trang", ID: "co-trang"},
	{Name: "Comedy", ID: "comedy"},
	{Name: "Comic", ID: "comic"},
	{Name: "Crossdress", ID: "crossdress"},
	{Name: "Demons", ID: "demons"},
	{Name: "Detective", ID: "detective"},
	{Name: "Doujinshi", ID: "doujinshi"},
	{Name: "Drama", ID: "drama"},
	{Name: "Đam Mỹ", ID: "dam-my"},
	{Name: "Ecchi", ID: "ecchi"},
	{Name: "Fantasy", ID: "fantasy"},
	{Name: "Gender Bender", ID: "gender-bender"},
	{Name: "Harem", ID: "harem"},
	{Name: "Historical", ID: "historical"},
	{Name: "Horror", ID: "horror"},
	{Name: "Huyền Huyễn", ID: "huyen-huyen"},
	{Name: "Isekai", ID: "isekai"},
	{Name: "Josei", ID: "josei"},
	{Name: "Magic", ID: "magic"},
	{Name: "Manga", ID: "manga"},
	{Name: "Manhua", ID: "manhua"},
	{Name: "Manhwa", ID: "manhwa"},
	{Name: "Martial Arts", ID: "martial-arts"},
	{Name: "Mature", ID: "mature"},
	{Name: "Mystery", ID: "mystery"},
	{Name: "Ngôn Tình", ID: "ngon-tinh"},
	{Name: "One Shot", ID: "one-shot"},
	{Name: "Psychological", ID: "psychological"},
	{Name: "Romance", ID: "romance"},
	{Name: "School Life", ID: "school-life"},
	{Name: "Sci-Fi", ID: "sci-fi"},
	{Name: "Seinen", ID: "seinen"},
	{Name: "Shoujo", ID: "shoujo"},
	{Name: "Shoujo Ai", ID: "shoujo-ai"},
	{Name: "Shounen", ID: "shounen"},
	{Name: "Shounen Ai", ID: "shounen-ai"},
	{Name: "Slice Of Life", ID: "slice-of-life"},
	{Name: "Sports", ID: "sports"},
	{Name: "Supernatural", ID: "supernatural"},
	{Name: "Tragedy", ID: "tragedy"},
	{Name: "Trọng Sinh", ID: "trong-sinh"},
	{Name: "Truyện Màu", ID: "truyen-mau"},
	{Name: "Webtoon", ID: "webtoon"},
	{Name: "Xuyên Không", ID: "xuyen-khong"},
	{Name: "Yaoi", ID: "yaoi"},
	{Name: "Yuri", ID: "yuri"},
}
