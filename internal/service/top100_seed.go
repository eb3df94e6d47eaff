package service

// top100Seed lists the canonical channel IDs used by the top-100 import.
// The set is ordered roughly by subscriber count at curation time; live
// metrics come from the Data API at import time.
var top100Seed = []string{
	"UCX6OQ3DkcsbYNE6H8uQQuVA", // MrBeast
	"UCq-Fj5jknLsUf-MWSy4_brA", // T-Series
	"UCbCmjCuTUZos6Inko4u57UQ", // Cocomelon
	"UCpEhnqL0y41EpW2TvWAHD7Q", // SET India
	"UCk8GzjMOrta8yxDcKfylJYw", // Kids Diana Show
	"UC-lHJZR3Gqxm24_Vd_AJ5Yw", // PewDiePie
	"UCJplp5SjeGSdVdwsfb9Q7lQ", // Like Nastya
	"UCvlE5gTbOvjiolFlEm-c_Ow", // Vlad and Niki
	"UCFFbwnve3yF62-tVXkTyHqg", // Zee Music Company
	"UCJ5v_MCY6GNUBTO8-D3XoAg", // WWE
	"UC295-Dw_tDNtZXFeAPAW6Aw", // 5-Minute Crafts
	"UCOmHUn--16B90oW2L6FRR3A", // BLACKPINK
	"UC6-F5tO8uklgE9Zy8IvbdFw", // Sony SAB
	"UCppHT7SZKKvar4Oc9J4oljQ", // Zee TV
	"UC3IZKseVpdzPSBaWxBxundA", // HYBE LABELS
	"UCIwFjwMjI0y7PDBVEO9-bkQ", // Justin Bieber
	"UCEdvpU2pFRCVqU6yIPyTpMQ", // Marshmello
	"UCRijo3ddMTht_IHyNSNXpNQ", // Dude Perfect
	"UCBnZ16ahKA2DZ_T5W0FPUXg", // ChuChu TV
	"UC0C-w0YjGpqDXGB8IHb662A", // Ed Sheeran
	"UCaWd5_7JhbQBe4dknZhsHJg", // Movieclips
	"UCffDXn7ycAzwL2LDlbyWOTw", // Colors TV
	"UCt4t-jeY85JegMlZ-E5UWtA", // Aaj Tak
	"UCbTLwN10NoCU4WDzLf1JMOA", // Netflix
	"UC55IWqFLDH1Xp7iu1_xknRA", // Infobells
}
