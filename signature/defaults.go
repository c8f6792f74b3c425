package signature

// DefaultProfileName 为默认签名的名称。
const DefaultProfileName = "Signature principale"

// DefaultStyle 返回编辑器的默认样式。
func DefaultStyle() Style {
	return Style{
		LogoWidth:        160,
		IconSize:         18,
		FooterFontSize:   11,
		NameFontSize:     22,
		JobTitleFontSize: 14,
		ContactFontSize:  13,
		VerticalSpacing:  8,
		LogoFooterGap:    12,
		ColumnGap:        40,
		DividerWidth:     2,
		DividerHeight:    120,

		AccentColor:      "#16a34a",
		DividerColor:     "#16a34a",
		PrimaryTextColor: "#1e293b",
		LogoBgColor:      "#1e293b",

		ShowLogoBackground:   true,
		ContactVerticalAlign: VAlignCenter,

		ShowFullName:    true,
		ShowJobTitle:    true,
		ShowEmail:       true,
		ShowPhoneWork:   true,
		ShowPhoneMobile: true,
		ShowAddress:     true,
		ShowWebsite:     true,
		ShowSocialIcons: true,

		NameTitleAlign:   AlignLeft,
		ContactInfoAlign: AlignLeft,
		WebsiteAlign:     AlignLeft,
		FooterTextAlign:  AlignLeft,
		LogoAlign:        AlignLeft,

		LayoutMode:   LogoLeft,
		DividerStyle: DividerSolid,
	}
}

// DefaultContent 返回默认签名的示例内容。
func DefaultContent() Content {
	return Content{
		FullName:       "Tarek Ben Bachir",
		JobTitle:       "Agent immobilier - IPI 511 438",
		Email:          "trk@homty.be",
		PhoneWork:      "+32 (2) 844 23 03",
		PhoneMobile:    "+32 (0) 484 86 59 54",
		Address:        "Avenue Louise 390 (bte13)\n1050 Ixelles - Bruxelles",
		Website:        "Homty.be",
		FooterServices: "Vente - Location - Gestion - Syndic",
		LogoURL:        "https://homty.be/wp-content/uploads/2021/04/Logo-Homty-White.png",
		SocialLinks: SocialLinks{
			Facebook:  "https://facebook.com/homty",
			Linkedin:  "https://linkedin.com/company/homty",
			Instagram: "https://instagram.com/homty",
		},
	}
}

// Default 返回首次启动时使用的签名快照。
func Default() Config {
	return Config{
		ID:          "default",
		ProfileName: DefaultProfileName,
		Content:     DefaultContent(),
		Style:       DefaultStyle(),
	}
}
