package parser

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/xmltree"
)

// ParseAdminData reads the SDGS/SDG/SD structure of an ADMIN-DATA
// element. Other ADMIN-DATA children (LANGUAGE, DOC-REVISIONS, ...)
// are not modelled and are passed over.
func ParseAdminData(n xmltree.Node) (*constant.AdminData, error) {
	ad := &constant.AdminData{}
	sdgs := xmltree.Find(n, "SDGS")
	if sdgs == nil {
		return ad, nil
	}
	for _, sdg := range xmltree.FindAll(sdgs, "SDG") {
		gid, ok := sdg.Attr("GID")
		if !ok {
			return nil, missingAttr("GID", "SDG")
		}
		group := constant.SpecialDataGroup{GID: gid}
		for _, child := range sdg.Children() {
			if child.Tag() != "SD" {
				return nil, unsupported(child.Tag(), "SDG")
			}
			sdGID, _ := child.Attr("GID")
			group.SpecialData = append(group.SpecialData, constant.SpecialData{GID: sdGID, Text: child.Text()})
		}
		ad.SpecialDataGroups = append(ad.SpecialDataGroups, group)
	}
	return ad, nil
}

// parseLangText reads the language-tagged paragraph (L-2 for DESC,
// L-4 for LONG-NAME). A missing paragraph yields nil.
func parseLangText(n xmltree.Node, tag string) (*constant.LangText, error) {
	p := xmltree.Find(n, tag)
	if p == nil {
		return nil, nil
	}
	lang, ok := p.Attr("L")
	if !ok {
		return nil, missingAttr("L", tag)
	}
	return &constant.LangText{Text: p.Text(), Lang: lang}, nil
}

// parseBoolean accepts the xsd:boolean spellings used by ARXML tools.
// ok is false for anything else.
func parseBoolean(s string) (bool, bool) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// parseInteger accepts decimal as well as 0x/0b/0 prefixed integers of
// any width. A numeric text that is not integral yields a nil value;
// ok is false only when the text is not a number at all.
func parseInteger(s string) (v *big.Int, ok bool) {
	s = strings.TrimSpace(s)
	if v, isInt := new(big.Int).SetString(s, 0); isInt {
		return v, true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return nil, true
	}
	return nil, false
}
