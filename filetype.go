// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"strconv"
	"strings"
)

// FileType is a BioWare resource type code.
// V1.0 archives store it explicitly, V2.0 archives derive it from the entry name extension.
type FileType uint16

// Known resource types. Codes below 20000 are BioWare's own, the rest are local
// tags for foreign formats that Aurora archives never store explicitly.
const (
	FileTypeRES  FileType = 0
	FileTypeBMP  FileType = 1
	FileTypeMVE  FileType = 2
	FileTypeTGA  FileType = 3
	FileTypeWAV  FileType = 4
	FileTypePLT  FileType = 6
	FileTypeINI  FileType = 7
	FileTypeBMU  FileType = 8
	FileTypeMPG  FileType = 9
	FileTypeTXT  FileType = 10
	FileTypeWMA  FileType = 11
	FileTypeWMV  FileType = 12
	FileTypeXMV  FileType = 13
	FileTypePLH  FileType = 2000
	FileTypeTEX  FileType = 2001
	FileTypeMDL  FileType = 2002
	FileTypeTHG  FileType = 2003
	FileTypeFNT  FileType = 2005
	FileTypeLUA  FileType = 2007
	FileTypeSLT  FileType = 2008
	FileTypeNSS  FileType = 2009
	FileTypeNCS  FileType = 2010
	FileTypeMOD  FileType = 2011
	FileTypeARE  FileType = 2012
	FileTypeSET  FileType = 2013
	FileTypeIFO  FileType = 2014
	FileTypeBIC  FileType = 2015
	FileTypeWOK  FileType = 2016
	FileType2DA  FileType = 2017
	FileTypeTLK  FileType = 2018
	FileTypeTXI  FileType = 2022
	FileTypeGIT  FileType = 2023
	FileTypeBTI  FileType = 2024
	FileTypeUTI  FileType = 2025
	FileTypeBTC  FileType = 2026
	FileTypeUTC  FileType = 2027
	FileTypeDLG  FileType = 2029
	FileTypeITP  FileType = 2030
	FileTypeBTT  FileType = 2031
	FileTypeUTT  FileType = 2032
	FileTypeDDS  FileType = 2033
	FileTypeBTS  FileType = 2034
	FileTypeUTS  FileType = 2035
	FileTypeLTR  FileType = 2036
	FileTypeGFF  FileType = 2037
	FileTypeFAC  FileType = 2038
	FileTypeBTE  FileType = 2039
	FileTypeUTE  FileType = 2040
	FileTypeBTD  FileType = 2041
	FileTypeUTD  FileType = 2042
	FileTypeBTP  FileType = 2043
	FileTypeUTP  FileType = 2044
	FileTypeDFT  FileType = 2045
	FileTypeGIC  FileType = 2046
	FileTypeGUI  FileType = 2047
	FileTypeCSS  FileType = 2048
	FileTypeCCS  FileType = 2049
	FileTypeBTM  FileType = 2050
	FileTypeUTM  FileType = 2051
	FileTypeDWK  FileType = 2052
	FileTypePWK  FileType = 2053
	FileTypeBTG  FileType = 2054
	FileTypeUTG  FileType = 2055
	FileTypeJRL  FileType = 2056
	FileTypeSAV  FileType = 2057
	FileTypeUTW  FileType = 2058
	FileType4PC  FileType = 2059
	FileTypeSSF  FileType = 2060
	FileTypeHAK  FileType = 2061
	FileTypeNWM  FileType = 2062
	FileTypeBIK  FileType = 2063
	FileTypeNDB  FileType = 2064
	FileTypePTM  FileType = 2065
	FileTypePTT  FileType = 2066
	FileTypeERF  FileType = 9997
	FileTypeBIF  FileType = 9998
	FileTypeKEY  FileType = 9999
	FileTypeICO  FileType = 20000
	FileTypeCUR  FileType = 20001
	FileTypeOGG  FileType = 20002
	FileTypeNone FileType = 0xFFFF
)

// fileTypeExtensions maps every known type to its lower-case extension.
var fileTypeExtensions = map[FileType]string{
	FileTypeRES: "res", FileTypeBMP: "bmp", FileTypeMVE: "mve", FileTypeTGA: "tga",
	FileTypeWAV: "wav", FileTypePLT: "plt", FileTypeINI: "ini", FileTypeBMU: "bmu",
	FileTypeMPG: "mpg", FileTypeTXT: "txt", FileTypeWMA: "wma", FileTypeWMV: "wmv",
	FileTypeXMV: "xmv", FileTypePLH: "plh", FileTypeTEX: "tex", FileTypeMDL: "mdl",
	FileTypeTHG: "thg", FileTypeFNT: "fnt", FileTypeLUA: "lua", FileTypeSLT: "slt",
	FileTypeNSS: "nss", FileTypeNCS: "ncs", FileTypeMOD: "mod", FileTypeARE: "are",
	FileTypeSET: "set", FileTypeIFO: "ifo", FileTypeBIC: "bic", FileTypeWOK: "wok",
	FileType2DA: "2da", FileTypeTLK: "tlk", FileTypeTXI: "txi", FileTypeGIT: "git",
	FileTypeBTI: "bti", FileTypeUTI: "uti", FileTypeBTC: "btc", FileTypeUTC: "utc",
	FileTypeDLG: "dlg", FileTypeITP: "itp", FileTypeBTT: "btt", FileTypeUTT: "utt",
	FileTypeDDS: "dds", FileTypeBTS: "bts", FileTypeUTS: "uts", FileTypeLTR: "ltr",
	FileTypeGFF: "gff", FileTypeFAC: "fac", FileTypeBTE: "bte", FileTypeUTE: "ute",
	FileTypeBTD: "btd", FileTypeUTD: "utd", FileTypeBTP: "btp", FileTypeUTP: "utp",
	FileTypeDFT: "dft", FileTypeGIC: "gic", FileTypeGUI: "gui", FileTypeCSS: "css",
	FileTypeCCS: "ccs", FileTypeBTM: "btm", FileTypeUTM: "utm", FileTypeDWK: "dwk",
	FileTypePWK: "pwk", FileTypeBTG: "btg", FileTypeUTG: "utg", FileTypeJRL: "jrl",
	FileTypeSAV: "sav", FileTypeUTW: "utw", FileType4PC: "4pc", FileTypeSSF: "ssf",
	FileTypeHAK: "hak", FileTypeNWM: "nwm", FileTypeBIK: "bik", FileTypeNDB: "ndb",
	FileTypePTM: "ptm", FileTypePTT: "ptt", FileTypeERF: "erf", FileTypeBIF: "bif",
	FileTypeKEY: "key", FileTypeICO: "ico", FileTypeCUR: "cur", FileTypeOGG: "ogg",
}

// extensionFileTypes is the reverse lookup of fileTypeExtensions.
var extensionFileTypes = func() map[string]FileType {
	out := make(map[string]FileType, len(fileTypeExtensions))
	for t, ext := range fileTypeExtensions {
		out[ext] = t
	}

	return out
}()

// Extension returns lower-case extension without dot, or empty string for unknown types.
func (t FileType) Extension() string {
	return fileTypeExtensions[t]
}

// Known reports whether type code has a registered extension.
func (t FileType) Known() bool {
	_, ok := fileTypeExtensions[t]
	return ok
}

// String returns the upper-case extension, or the decimal code for unknown types.
func (t FileType) String() string {
	if t == FileTypeNone {
		return "NONE"
	}

	if ext, ok := fileTypeExtensions[t]; ok {
		return strings.ToUpper(ext)
	}

	return strconv.Itoa(int(t))
}

// FileTypeFromExtension resolves extension (with or without leading dot, any case) to a type.
func FileTypeFromExtension(ext string) FileType {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if t, ok := extensionFileTypes[ext]; ok {
		return t
	}

	return FileTypeNone
}

// SplitFileName splits "name.ext" into base name and resource type.
// The trailing extension is always stripped; unknown extensions yield FileTypeNone.
func SplitFileName(name string) (string, FileType) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name, FileTypeNone
	}

	return name[:dot], FileTypeFromExtension(name[dot+1:])
}
