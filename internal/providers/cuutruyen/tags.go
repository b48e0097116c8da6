package cuutruyen

import "github.com/brogergvhs/mangasrc/internal/providers"

var tags = []providers.Tag{
	{Name: "Tất cả", ID: ""},
	{Name: "Action", ID: "action"},
	{Name: "Comedy", ID: "comedy"},
	{Name: "Drama", ID: "drama"},
	{Name: "Fantasy", ID: "fantasy"},
	{Name: "Horror", ID: "horror"},
	{Name: "Manga", ID: "manga"},
	{Name: "Manhwa", ID: "manhwa"},
	{Name: "Manhua", ID: "manhua"},
	{Name: "Mystery", ID: "mystery"},
	{Name: "Romance", ID: "romance"},
	{Name: "School Life", ID: "school-life"},
	{Name: "Sci-Fi", ID: "sci-fi"},
	{Name: "Slice of Life", ID: "slice-of-life"},
	{Name: "Sports", ID: "sports"},
	{Name: "Supernatural", ID: "supernatural"},
	{Name: "Đang tiến hành", ID: "dang-tien-hanh"},
	{Name: "Đã hoàn thành", ID: "da-hoan-thanh"},
}
