// Package price provides the monetary value types of the calculation model.
//
// A Price is an immutable arbitrary-precision amount without a currency.
// Prices compare by numeric value, so "1.2" and "1.20" are the same price.
// A PriceRange is an inclusive interval whose bounds are each optional; a
// missing bound means "no limit" on that side.
//
// Both types read and write themselves as XML elements:
//
//	<price amount="10.50"/>
//	<priceRange>
//	  <minimum amount="0"/>
//	  <maximum amount="19"/>
//	</priceRange>
//
// Optional values are represented by nil pointers throughout: a nil *Price
// is "no price", and the Parse functions return (nil, nil) for absent input.
package price
