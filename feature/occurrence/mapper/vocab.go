package mapper

import "strings"

// Destination cause vocabulary, keyed by the source category tag.
var causeByCategoryTag = map[string]string{
	"Animal Welfare":                    "ANIMAL_WELFARE",
	"Arts & Culture":                    "ARTS_CULTURE",
	"Civic & Community":                 "COMMUNITY_DEVELOPMENT",
	"Maintenance and renovation":        "COMMUNITY_DEVELOPMENT",
	"Disaster and emergency":            "CRISIS_SUPPORT",
	"Diversity and inclusion":           "DIVERSITY_INCLUSION",
	"Training and Empowerment":          "EDUCATION",
	"Education":                         "EDUCATION",
	"Environmental Conservation":        "ENVIRONMENT",
	"Health and well-being":             "HEALTH_SPORTS",
	"Food Assistance":                   "POVERTY",
	"Awareness and sharing information": "OTHERS",
	"Support and assistance":            "OTHERS",
}

// Destination recipient vocabulary, keyed by the source populations-served tag.
var recipientByPopulation = map[string]string{
	"Animals":                               "ANIMAL",
	"Children and youth":                    "CHILDREN_YOUTH",
	"Disadvantaged women":                   "WOMEN",
	"Domestic & migrant workers":            "FOREIGN_WORKERS",
	"Elderly":                               "ELDERLY",
	"Environment":                           "ENVIRONMENT",
	"Ethnic minorities":                     "ETHNIC_MINORITY",
	"Families":                              "FAMILIES",
	"LGBTQ":                                 "LGBT",
	"Low income households":                 "LOW_INCOME",
	"People experiencing homelessness":      "LOW_INCOME",
	"People with health conditions":         "PATIENTS",
	"People with mental health conditions":  "MENTAL_HEALTH",
	"People with physical disabilities":     "DISABLED",
	"People with special educational needs": "CHILDREN_YOUTH",
	"Refugees and asylum seekers":           "REFUGEES_ASYLUM",
}

// DistrictCatchAll is emitted when no address fragment matches the table.
const DistrictCatchAll = "HONG_KONG"

type districtEntry struct {
	needle   string
	district string
}

// districtByAddress maps address fragments to the destination's district
// vocabulary. Entries are ordered; the first fragment contained in the
// address wins. Both English and Chinese area names are listed because the
// two locale variants carry independently written addresses.
var districtByAddress = []districtEntry{
	{"Central", "CENTRAL_WESTERN"},
	{"Sheung Wan", "CENTRAL_WESTERN"},
	{"Sai Ying Pun", "CENTRAL_WESTERN"},
	{"Kennedy Town", "CENTRAL_WESTERN"},
	{"Mid-Levels", "CENTRAL_WESTERN"},
	{"中環", "CENTRAL_WESTERN"},
	{"上環", "CENTRAL_WESTERN"},
	{"西營盤", "CENTRAL_WESTERN"},
	{"堅尼地城", "CENTRAL_WESTERN"},
	{"Wan Chai", "WAN_CHAI"},
	{"Causeway Bay", "WAN_CHAI"},
	{"Happy Valley", "WAN_CHAI"},
	{"灣仔", "WAN_CHAI"},
	{"銅鑼灣", "WAN_CHAI"},
	{"跑馬地", "WAN_CHAI"},
	{"North Point", "EASTERN"},
	{"Quarry Bay", "EASTERN"},
	{"Shau Kei Wan", "EASTERN"},
	{"Chai Wan", "EASTERN"},
	{"北角", "EASTERN"},
	{"鰂魚涌", "EASTERN"},
	{"筲箕灣", "EASTERN"},
	{"柴灣", "EASTERN"},
	{"Aberdeen", "SOUTHERN"},
	{"Ap Lei Chau", "SOUTHERN"},
	{"Pok Fu Lam", "SOUTHERN"},
	{"Stanley", "SOUTHERN"},
	{"香港仔", "SOUTHERN"},
	{"鴨脷洲", "SOUTHERN"},
	{"薄扶林", "SOUTHERN"},
	{"赤柱", "SOUTHERN"},
	{"Tsim Sha Tsui", "YAU_TSIM_MONG"},
	{"Yau Ma Tei", "YAU_TSIM_MONG"},
	{"Mong Kok", "YAU_TSIM_MONG"},
	{"Jordan", "YAU_TSIM_MONG"},
	{"尖沙咀", "YAU_TSIM_MONG"},
	{"油麻地", "YAU_TSIM_MONG"},
	{"旺角", "YAU_TSIM_MONG"},
	{"佐敦", "YAU_TSIM_MONG"},
	{"Sham Shui Po", "SHAM_SHUI_PO"},
	{"Lai Chi Kok", "SHAM_SHUI_PO"},
	{"Mei Foo", "SHAM_SHUI_PO"},
	{"深水埗", "SHAM_SHUI_PO"},
	{"荔枝角", "SHAM_SHUI_PO"},
	{"美孚", "SHAM_SHUI_PO"},
	{"Kowloon City", "KOWLOON_CITY"},
	{"To Kwa Wan", "KOWLOON_CITY"},
	{"Hung Hom", "KOWLOON_CITY"},
	{"Kowloon Tong", "KOWLOON_CITY"},
	{"九龍城", "KOWLOON_CITY"},
	{"土瓜灣", "KOWLOON_CITY"},
	{"紅磡", "KOWLOON_CITY"},
	{"九龍塘", "KOWLOON_CITY"},
	{"Wong Tai Sin", "WONG_TAI_SIN"},
	{"Diamond Hill", "WONG_TAI_SIN"},
	{"San Po Kong", "WONG_TAI_SIN"},
	{"黃大仙", "WONG_TAI_SIN"},
	{"鑽石山", "WONG_TAI_SIN"},
	{"新蒲崗", "WONG_TAI_SIN"},
	{"Kwun Tong", "KWUN_TONG"},
	{"Ngau Tau Kok", "KWUN_TONG"},
	{"Lam Tin", "KWUN_TONG"},
	{"Yau Tong", "KWUN_TONG"},
	{"觀塘", "KWUN_TONG"},
	{"牛頭角", "KWUN_TONG"},
	{"藍田", "KWUN_TONG"},
	{"油塘", "KWUN_TONG"},
	{"Kwai Chung", "KWAI_TSING"},
	{"Tsing Yi", "KWAI_TSING"},
	{"Cheung Sha Wan", "KWAI_TSING"},
	{"葵涌", "KWAI_TSING"},
	{"青衣", "KWAI_TSING"},
	{"長沙灣", "KWAI_TSING"},
	{"Tsuen Wan", "TSUEN_WAN"},
	{"荃灣", "TSUEN_WAN"},
	{"Tuen Mun", "TUEN_MUN"},
	{"屯門", "TUEN_MUN"},
	{"Yuen Long", "YUEN_LONG"},
	{"Tin Shui Wai", "YUEN_LONG"},
	{"元朗", "YUEN_LONG"},
	{"天水圍", "YUEN_LONG"},
	{"Sheung Shui", "NORTH"},
	{"Fanling", "NORTH"},
	{"上水", "NORTH"},
	{"粉嶺", "NORTH"},
	{"Tai Po", "TAI_PO"},
	{"大埔", "TAI_PO"},
	{"Sha Tin", "SHA_TIN"},
	{"Ma On Shan", "SHA_TIN"},
	{"Fo Tan", "SHA_TIN"},
	{"沙田", "SHA_TIN"},
	{"馬鞍山", "SHA_TIN"},
	{"火炭", "SHA_TIN"},
	{"Sai Kung", "SAI_KUNG"},
	{"Tseung Kwan O", "SAI_KUNG"},
	{"西貢", "SAI_KUNG"},
	{"將軍澳", "SAI_KUNG"},
	{"Tung Chung", "ISLANDS"},
	{"Lantau", "ISLANDS"},
	{"Cheung Chau", "ISLANDS"},
	{"Lamma", "ISLANDS"},
	{"Mui Wo", "ISLANDS"},
	{"東涌", "ISLANDS"},
	{"大嶼山", "ISLANDS"},
	{"長洲", "ISLANDS"},
	{"南丫島", "ISLANDS"},
	{"梅窩", "ISLANDS"},
}

// districtFor resolves the district list for a record. The English address
// is checked before the Chinese one; the first table fragment contained in
// an address wins, and at most one district is ever emitted. Addresses
// matching nothing fall through to the catch-all.
func districtFor(enAddress, zhAddress string) []string {
	for _, address := range []string{enAddress, zhAddress} {
		if address == "" {
			continue
		}
		for _, entry := range districtByAddress {
			if strings.Contains(address, entry.needle) {
				return []string{entry.district}
			}
		}
	}
	return []string{DistrictCatchAll}
}
