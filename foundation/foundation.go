// Package foundation provides reconstructible renditions of the Foundation
// classes commonly found in keyed archives, plus helpers for registering
// caller-defined classes. Collection and value classes unbox into natives;
// anything unrecognized can fall back to the generic Object wrapper.
package foundation

import (
	dataplist "github.com/gitpan/Data-Plist"
)

// Field keys used by Foundation when encoding its own classes.
const (
	objectsField   = "NS.objects"
	keysField      = "NS.keys"
	dataField      = "NS.data"
	timeField      = "NS.time"
	stringField    = "NS.string"
	relativeField  = "NS.relative"
	baseField      = "NS.base"
	uuidBytesField = "NS.uuidbytes"
)

// DefaultRegistry returns a registry populated with every built-in class.
// Callers extend the result with their own registrations before handing it
// to a document.
func DefaultRegistry() *dataplist.Registry {
	r := dataplist.NewRegistry()
	_ = r.Register("NSObject", GenericFactory("NSObject"))
	_ = r.Register("NSArray", func() any { return NSArray{} })
	_ = r.Register("NSMutableArray", func() any { return NSMutableArray{} })
	_ = r.Register("NSSet", func() any { return NSSet{} })
	_ = r.Register("NSMutableSet", func() any { return NSMutableSet{} })
	_ = r.Register("NSDictionary", func() any { return NSDictionary{} })
	_ = r.Register("NSMutableDictionary", func() any { return NSMutableDictionary{} })
	_ = r.Register("NSData", func() any { return NSData{} })
	_ = r.Register("NSMutableData", func() any { return NSMutableData{} })
	_ = r.Register("NSDate", func() any { return NSDate{} })
	_ = r.Register("NSString", func() any { return NSString{} })
	_ = r.Register("NSMutableString", func() any { return NSMutableString{} })
	_ = r.Register("NSURL", func() any { return NSURL{} })
	_ = r.Register("NSUUID", func() any { return NSUUID{} })
	return r
}

// GenericFactory returns a factory producing Object wrappers tagged with
// class. Useful for classes whose fields should be kept as-is.
func GenericFactory(class string) dataplist.Factory {
	return func() any {
		return &Object{Class: class}
	}
}
