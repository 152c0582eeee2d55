// Package calculation implements the pricing rules of a calculation model.
//
// A Model owns an ordered DetailList. Each Detail is one rule: an optional
// percentage, an optional absolute surcharge and an optional PriceRange that
// limits which input prices the rule applies to.
//
// # Rule Selection
//
// Model.Calculate asks the list for the first rule whose range is unset or
// contains the input price. Selection is first-match in list order, not
// best-match; SortByMinimumAscending can be used to put the most specific
// ranges first. When no rule matches, Calculate returns (nil, nil).
//
// # Adjustment
//
// With both a percentage and an absolute value set, percentFirst decides the
// order of operations:
//
//	percentFirst:  (price + price*percent) + absolute
//	otherwise:     (price + absolute) + (price + absolute)*percent
//
// A rule with only one of the two applies just that one; a rule with neither
// returns the price unchanged.
//
// # Markup
//
//	<calculationModel>
//	  <calculationModelDetailList>
//	    <calculationModelDetail percent="0.10">
//	      <absolute amount="10"/>
//	      <priceRange>
//	        <minimum amount="1"/>
//	        <maximum amount="199"/>
//	      </priceRange>
//	    </calculationModelDetail>
//	    <calculationModelDetail/>
//	  </calculationModelDetailList>
//	</calculationModel>
package calculation
